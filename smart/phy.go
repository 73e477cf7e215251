package smart

import "strings"

// parsePhyLog implements the SATA Phy Event Counters subsection of §6.2: a
// merged-text property plus a supported flag.
func parsePhyLog(body string) ([]Property, []Diagnostic) {
	var props []Property

	props = append(props, newProperty(SectionPhyLog, "ata_sata_phy_event_counters/_merged", "", body, stringValue(body)))

	supported := !strings.Contains(body, "not supported") && !strings.Contains(body, "Read SATA Phy Event Counters failed")
	props = append(props, newProperty(SectionPhyLog, "ata_sata_phy_event_counters/supported", "", "", boolValue(supported)))

	return props, nil
}
