package smart

import "strings"

// parseErcLog implements the SCT Error Recovery Control subsection of
// §6.2: a merged-text property plus a supported flag.
func parseErcLog(body string) ([]Property, []Diagnostic) {
	var props []Property

	props = append(props, newProperty(SectionErcLog, "ata_sct_erc/_merged", "", body, stringValue(body)))

	supported := !strings.Contains(body, "not supported") && !strings.Contains(body, "command failed")
	props = append(props, newProperty(SectionErcLog, "ata_sct_erc/supported", "", "", boolValue(supported)))

	return props, nil
}
