package smart

import (
	"strconv"
	"strings"
)

// parseDevstat implements the Device Statistics subsection of §4.3.6: a
// merged-text property for the whole log, plus one StatisticEntry property
// per data row (and a header-only property for each page title row).
func parseDevstat(body string) ([]Property, []Diagnostic) {
	var props []Property
	var diags []Diagnostic

	props = append(props, newProperty(SectionDevstat, "ata_device_statistics/_merged", "", body, stringValue(body)))

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "Device Statistics") || strings.HasPrefix(trimmed, "Page") {
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) < 4 {
			continue
		}

		page := parsePageNumber(fields[0])

		if strings.Contains(fields[1], "=") {
			desc := strings.TrimLeft(strings.Join(fields[4:], " "), "= ")
			entry := &StatisticEntry{Page: page, IsHeader: true}
			p := newProperty(SectionDevstat, "", desc, "", statisticValue(entry))
			p.DisplayableName = desc
			props = append(props, p)
			continue
		}

		offset := parseOffset(fields[1])
		valueInt, valueStr := parseDevstatValue(fields[3])

		var flags, desc string
		rest := fields[4:]
		if len(rest) > 0 && isFlagToken(rest[0]) {
			flags = normalizeDevstatFlags(rest[0])
			desc = strings.Join(rest[1:], " ")
		} else {
			desc = strings.Join(rest, " ")
		}

		entry := &StatisticEntry{
			Page:        page,
			Offset:      offset,
			Flags:       flags,
			ValueString: valueStr,
			ValueInt:    valueInt,
		}
		p := newProperty(SectionDevstat, "", desc, valueStr, statisticValue(entry))
		p.DisplayableName = desc
		props = append(props, p)
	}

	if len(props) <= 1 {
		diags = append(diags, Diagnostic{Code: ErrDataError, Section: SectionDevstat, Message: "device statistics section had no parseable rows"})
	}

	return props, diags
}

func parsePageNumber(s string) uint8 {
	s = strings.TrimPrefix(s, "0x")
	n, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return uint8(n)
}

func parseOffset(s string) uint16 {
	s = strings.TrimPrefix(s, "0x")
	n, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0
	}
	return uint16(n)
}

func parseDevstatValue(s string) (int64, string) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, s
	}
	return n, s
}

// isFlagToken reports whether a short all-punctuation/letter token looks
// like a devstat flags column (e.g. "---", "N", "VDC") rather than the
// start of the description text.
func isFlagToken(s string) bool {
	if len(s) == 0 || len(s) > 4 {
		return false
	}
	for _, r := range s {
		if !(r == '-' || r == '~' || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return true
}

// normalizeDevstatFlags implements the older-smartctl "~ suffix means N"
// convention noted in §4.3.6.
func normalizeDevstatFlags(flags string) string {
	if strings.HasSuffix(flags, "~") {
		return strings.TrimSuffix(flags, "~") + "N"
	}
	return flags
}
