package smart

import (
	"regexp"
	"strconv"
	"strings"
)

type attributeFormat int

const (
	attrFormatOld attributeFormat = iota
	attrFormatOldNoUpdated
	attrFormatBrief
)

var reDataStructureRevision = regexp.MustCompile(`Data Structure revision number:\s*(\d+)`)

var reAttrRowOld = regexp.MustCompile(
	`^\s*(\d{1,3})\s+(.+?)\s+(0x[0-9A-Fa-f]+|[A-Z-]{2,})\s+(\d{1,3}|-{1,3})\s+(\d{1,3}|-{1,3})\s+(\d{1,3}|-{1,3})\s+(Pre-fail|Old_age)\s+(Always|Offline)\s+(-|In_the_past|FAILING_NOW|Past|NOW)\s+(.*)$`)

var reAttrRowOldNoUpdated = regexp.MustCompile(
	`^\s*(\d{1,3})\s+(.+?)\s+(0x[0-9A-Fa-f]+|[A-Z-]{2,})\s+(\d{1,3}|-{1,3})\s+(\d{1,3}|-{1,3})\s+(\d{1,3}|-{1,3})\s+(Pre-fail|Old_age)\s+(-|In_the_past|FAILING_NOW|Past|NOW)\s+(.*)$`)

var reAttrRowBrief = regexp.MustCompile(
	`^\s*(\d{1,3})\s+(\S+)\s+([A-Za-z-]{4,8})\s+(\d{1,3}|-{1,3})\s+(\d{1,3}|-{1,3})\s+(\d{1,3}|-{1,3})\s+(-|In_the_past|FAILING_NOW|Past|NOW)\s+(.*)$`)

func detectAttributeFormat(header string) attributeFormat {
	hasUpdated := strings.Contains(header, "UPDATED")
	hasWhenFailed := strings.Contains(header, "WHEN_FAILED")
	switch {
	case hasUpdated && hasWhenFailed:
		return attrFormatOld
	case hasWhenFailed:
		return attrFormatOldNoUpdated
	default:
		return attrFormatBrief
	}
}

func parseOptionalUint8(s string) *uint8 {
	s = strings.TrimSpace(s)
	if s == "" || strings.Trim(s, "-") == "" {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return nil
	}
	v := uint8(n)
	return &v
}

func parseWhenFailed(s string) WhenFailed {
	switch strings.TrimSpace(s) {
	case "-":
		return WhenFailedNone
	case "In_the_past", "Past":
		return WhenFailedPast
	case "FAILING_NOW", "NOW":
		return WhenFailedNow
	default:
		return WhenFailedUnknown
	}
}

func parseAttrType(s string) AttrType {
	switch s {
	case "Pre-fail":
		return AttrTypePrefail
	case "Old_age":
		return AttrTypeOldAge
	default:
		return AttrTypeUnknown
	}
}

// briefAttrType derives TYPE from the flag-letter set: presence of "P"
// means Prefail, else OldAge (§4.3.5 point 4, brief format).
func briefAttrType(flags string) AttrType {
	if strings.Contains(flags, "P") {
		return AttrTypePrefail
	}
	return AttrTypeOldAge
}

// briefUpdateType derives UPDATED from the flag-letter set: presence of "O"
// means Always, else Offline.
func briefUpdateType(flags string) UpdateType {
	if strings.Contains(flags, "O") {
		return UpdateTypeAlways
	}
	return UpdateTypeOffline
}

// parseAttributes implements §4.3.5.
func parseAttributes(body string) ([]Property, []Diagnostic) {
	lines := strings.Split(body, "\n")

	var headerLine string
	for _, l := range lines {
		if strings.Contains(l, "ID#") {
			headerLine = l
			break
		}
	}
	format := detectAttributeFormat(headerLine)

	var props []Property
	var diags []Diagnostic

	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}

		if m := reDataStructureRevision.FindStringSubmatch(trimmed); m != nil {
			n, _ := strconv.ParseInt(m[1], 10, 64)
			p := newProperty(SectionAttributes, "ata_smart_attributes/revision", "Data Structure revision number", m[1], intValue(n))
			props = append(props, p)
			continue
		}

		// The header itself and the "|||..." flag legend are skipped
		// explicitly here; any other non-row line simply fails to match
		// a row grammar below.
		if strings.Contains(trimmed, "ID#") || strings.Contains(trimmed, "|") {
			continue
		}

		var m []string
		switch format {
		case attrFormatOld:
			m = reAttrRowOld.FindStringSubmatch(trimmed)
		case attrFormatOldNoUpdated:
			m = reAttrRowOldNoUpdated.FindStringSubmatch(trimmed)
		default:
			m = reAttrRowBrief.FindStringSubmatch(trimmed)
		}
		if m == nil {
			continue
		}

		id, err := strconv.ParseUint(m[1], 10, 8)
		if err != nil {
			continue
		}

		var entry *AttributeEntry
		var name string
		switch format {
		case attrFormatOld:
			name = strings.TrimSpace(m[2])
			entry = &AttributeEntry{
				ID:             uint8(id),
				FlagRaw:        m[3],
				Value:          parseOptionalUint8(m[4]),
				Worst:          parseOptionalUint8(m[5]),
				Threshold:      parseOptionalUint8(m[6]),
				AttrType:       parseAttrType(m[7]),
				UpdateType:     map[string]UpdateType{"Always": UpdateTypeAlways, "Offline": UpdateTypeOffline}[m[8]],
				WhenFailed:     parseWhenFailed(m[9]),
				RawValueString: strings.TrimSpace(m[10]),
				RawValueInt:    firstInt(m[10]),
			}
		case attrFormatOldNoUpdated:
			name = strings.TrimSpace(m[2])
			entry = &AttributeEntry{
				ID:             uint8(id),
				FlagRaw:        m[3],
				Value:          parseOptionalUint8(m[4]),
				Worst:          parseOptionalUint8(m[5]),
				Threshold:      parseOptionalUint8(m[6]),
				AttrType:       parseAttrType(m[7]),
				UpdateType:     UpdateTypeUnknown,
				WhenFailed:     parseWhenFailed(m[8]),
				RawValueString: strings.TrimSpace(m[9]),
				RawValueInt:    firstInt(m[9]),
			}
		default: // brief
			name = strings.TrimSpace(m[2])
			flags := m[3]
			entry = &AttributeEntry{
				ID:             uint8(id),
				FlagRaw:        flags,
				Value:          parseOptionalUint8(m[4]),
				Worst:          parseOptionalUint8(m[5]),
				Threshold:      parseOptionalUint8(m[6]),
				AttrType:       briefAttrType(flags),
				UpdateType:     briefUpdateType(flags),
				WhenFailed:     parseWhenFailed(m[7]),
				RawValueString: strings.TrimSpace(m[8]),
				RawValueInt:    firstInt(m[8]),
			}
		}

		p := newProperty(SectionAttributes, "", name, entry.RawValueString, attributeValue(entry))
		p.DisplayableName = name
		props = append(props, p)
	}

	if len(props) == 0 {
		diags = append(diags, Diagnostic{Code: ErrDataError, Section: SectionAttributes, Message: "attributes section had no parseable rows"})
	}

	return props, diags
}
