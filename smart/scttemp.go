package smart

import (
	"regexp"
	"strconv"
	"strings"
)

var reCurrentTemperature = regexp.MustCompile(`Current Temperature:\s*(-?\d+)\s*Celsius`)

// parseTemperatureLog implements the SCT Temperature subsection of §4.3.6:
// a merged-text property plus the current-temperature reading that the
// severity classifier (C5) keys on.
func parseTemperatureLog(body string) ([]Property, []Diagnostic) {
	var props []Property
	var diags []Diagnostic

	props = append(props, newProperty(SectionTemperatureLog, "ata_sct_status/_merged", "", body, stringValue(body)))

	if m := reCurrentTemperature.FindStringSubmatch(body); m != nil {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		props = append(props, newProperty(SectionTemperatureLog, "ata_sct_status/temperature/current", "Current Temperature", m[1], intValue(n)))
	} else if !strings.Contains(body, "SCT Commands not supported") {
		diags = append(diags, Diagnostic{Code: ErrDataError, Section: SectionTemperatureLog, Message: "SCT temperature section had no current-temperature reading"})
	}

	return props, diags
}
