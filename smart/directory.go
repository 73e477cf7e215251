package smart

import (
	"regexp"
	"strconv"
	"strings"
)

var reLogDirectoryVersion = regexp.MustCompile(`SMART Log Directory Version\s*(\d+)`)

// parseDirectoryLog implements the Log Directory subsection of §6.2: a
// merged-text property plus the directory version, when present.
func parseDirectoryLog(body string) ([]Property, []Diagnostic) {
	var props []Property

	props = append(props, newProperty(SectionDirectoryLog, "ata_log_directory/_merged", "", body, stringValue(body)))

	if m := reLogDirectoryVersion.FindStringSubmatch(body); m != nil {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		props = append(props, newProperty(SectionDirectoryLog, "ata_log_directory/version", "", m[1], intValue(n)))
	}

	supported := !strings.Contains(body, "Read GP Log Directory failed") && !strings.Contains(body, "not read due to")
	props = append(props, newProperty(SectionDirectoryLog, "ata_log_directory/supported", "", "", boolValue(supported)))

	return props, nil
}
