package smart

import (
	"regexp"
	"strings"
)

var reHealthLine = regexp.MustCompile(`^([^:]+):(.*)$`)

// parseHealth implements §4.3.2: the single "name:value" health line.
func parseHealth(body string) ([]Property, []Diagnostic) {
	var props []Property
	var diags []Diagnostic

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		m := reHealthLine.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		value := strings.TrimSpace(m[2])

		if strings.Contains(name, "SMART overall-health self-assessment") {
			p := newProperty(SectionHealth, "smart_status/passed", name, value, boolValue(value == "PASSED"))
			p.DisplayableName = "SMART overall-health self-assessment"
			props = append(props, p)
			continue
		}

		p := newProperty(SectionHealth, "", name, value, stringValue(value))
		p.DisplayableName = name
		props = append(props, p)
	}

	if len(props) == 0 {
		diags = append(diags, Diagnostic{Code: ErrDataError, Section: SectionHealth, Message: "health section had no parseable rows"})
	}

	return props, diags
}
