package smart

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var reAtaErrorCount = regexp.MustCompile(`ATA Error Count:\s*(\d+)`)

var reErrorBlockHeader = regexp.MustCompile(`^Error\s+(\d+)\s*(?:\[\d+\]\s*)?occurred at disk power-on lifetime:\s*(\d+)\s*hours`)

var reErrorTypeLine = regexp.MustCompile(`^Error:\s*([^0-9]*?)(?:\s+\d.*)?$`)

// parseErrorLog implements the ATA Error Log subsection of §4.3.6 and
// scenario 6: a merged-text property, an error-count property, and one
// ErrorBlockEntry property per recorded error, emitted ordered by error_num
// descending.
func parseErrorLog(body string) ([]Property, []Diagnostic) {
	var props []Property
	var diags []Diagnostic

	props = append(props, newProperty(SectionErrorLog, "ata_smart_error_log/_merged", "", body, stringValue(body)))

	if m := reAtaErrorCount.FindStringSubmatch(body); m != nil {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		props = append(props, newProperty(SectionErrorLog, "ata_smart_error_log/extended/count", "ATA Error Count", m[1], intValue(n)))
	}

	lines := strings.Split(body, "\n")
	var blocks []*ErrorBlockEntry
	var current *ErrorBlockEntry

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if m := reErrorBlockHeader.FindStringSubmatch(trimmed); m != nil {
			num, _ := strconv.ParseUint(m[1], 10, 32)
			hours, _ := strconv.ParseUint(m[2], 10, 64)
			current = &ErrorBlockEntry{ErrorNum: uint32(num), LifetimeHours: hours}
			blocks = append(blocks, current)
			continue
		}
		if current == nil {
			continue
		}
		if m := reErrorTypeLine.FindStringSubmatch(trimmed); m != nil {
			types := strings.Split(strings.TrimSpace(m[1]), ",")
			for _, t := range types {
				t = strings.TrimSpace(t)
				if t != "" {
					current.ReportedTypes = append(current.ReportedTypes, t)
				}
			}
			continue
		}
		if current.DeviceState == "" && trimmed != "" {
			current.DeviceState = trimmed
		} else if trimmed != "" {
			if current.TypeMoreInfo != "" {
				current.TypeMoreInfo += " "
			}
			current.TypeMoreInfo += trimmed
		}
	}

	sort.Slice(blocks, func(i, j int) bool { return blocks[i].ErrorNum > blocks[j].ErrorNum })

	for _, b := range blocks {
		name := "Error " + strconv.FormatUint(uint64(b.ErrorNum), 10)
		p := newProperty(SectionErrorLog, "", name, "", errorBlockValue(b))
		p.DisplayableName = name
		props = append(props, p)
	}

	if len(blocks) == 0 {
		diags = append(diags, Diagnostic{Code: ErrDataError, Section: SectionErrorLog, Message: "error log had a header but no recognizable error blocks"})
	}

	return props, diags
}
