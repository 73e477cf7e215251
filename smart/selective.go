package smart

import "strings"

// parseSelectiveSelftestLog implements the Selective Self-Test Log
// subsection of §4.3.6: an always-emitted merged property plus a supported
// flag, following the "merged text + presence flags" pattern shared by the
// lighter subsections.
func parseSelectiveSelftestLog(body string) ([]Property, []Diagnostic) {
	var props []Property

	props = append(props, newProperty(SectionSelectiveSelftestLog, "ata_smart_selective_self_test_log/_merged", "", body, stringValue(body)))

	supported := !strings.Contains(body, "Device does not support Selective Self Tests/Logging") &&
		!strings.Contains(body, "Read SMART Selective Self-test Log failed")
	props = append(props, newProperty(SectionSelectiveSelftestLog, "ata_smart_selective_self_test_log/supported", "", "", boolValue(supported)))

	return props, nil
}
