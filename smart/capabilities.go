package smart

import (
	"regexp"
	"strconv"
	"strings"
)

// reVendorSpecificCollapse handles the smartctl < 5.39 bug where "is in a
// Vendor Specific state" is split across two lines with a lone "." on the
// second.
var reVendorSpecificCollapse = regexp.MustCompile(`(?m)^(.*is in a Vendor Specific state)\n\.\s*\n`)

var reCapHeader = regexp.MustCompile(`(?s)^(.*?):\s*\((0x[0-9A-Fa-f]+|\s*-?\d+)\)\s*(.*)$`)

// capGroupNames maps a normalized (lowercase, spaces/hyphens stripped) group
// heading to its stable generic-name prefix (§4.3.4 point 4).
var capGroupNames = map[string]string{
	"offlinedatacollectionstatus":       "ata_smart_data/offline_data_collection/status/_group",
	"offlinedatacollectioncapabilities": "ata_smart_data/offline_data_collection/capabilities/_group",
	"smartcapabilities":                 "ata_smart_data/capabilities/_group",
	"errorloggingcapability":            "ata_smart_data/capabilities/error_logging_supported/_group",
	"sctcapabilities":                   "ata_sct_capabilities/_group",
	"selftestexecutionstatus":           "ata_smart_data/self_test/status/_group",
}

func normalizeHeading(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\t", "")
	return s
}

// capBlock is one "<name>: (<num>) <strvalue...>" block before it has been
// classified as a time length or a capability.
type capBlock struct {
	name      string
	num       int64
	numRaw    string
	strValue  string
}

func parseCapNum(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		n, err := strconv.ParseInt(raw[2:], 16, 64)
		if err != nil {
			return 0
		}
		return n
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// splitCapabilityBlocks implements the block-builder of §4.3.4 point 2: a
// block starts at a non-indented line and accumulates indented continuation
// lines until the next non-indented line starts a new block.
func splitCapabilityBlocks(body string) []capBlock {
	lines := strings.Split(body, "\n")
	if len(lines) > 0 {
		lines = lines[1:] // drop the "General SMART Values:" style header line
	}

	var blocks []capBlock
	var nameBuf []string
	var open *capBlock
	var valueLines []string

	flush := func() {
		if open != nil {
			open.strValue = strings.TrimSpace(strings.Join(valueLines, " "))
			blocks = append(blocks, *open)
		}
		open = nil
		valueLines = nil
	}

	for _, raw := range lines {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if len(raw) > 0 && (raw[0] == ' ' || raw[0] == '\t') {
			if open != nil {
				valueLines = append(valueLines, strings.TrimSpace(raw))
			}
			continue
		}

		nameBuf = append(nameBuf, strings.TrimSpace(raw))
		combined := strings.Join(nameBuf, " ")
		m := reCapHeader.FindStringSubmatch(combined)
		if m == nil {
			continue
		}

		flush()
		open = &capBlock{name: strings.TrimSpace(m[1]), num: parseCapNum(m[2]), numRaw: strings.TrimSpace(m[2])}
		if rest := strings.TrimSpace(m[3]); rest != "" {
			valueLines = append(valueLines, rest)
		}
		nameBuf = nil
	}
	flush()

	return blocks
}

// timeLengthKey maps a "Total time..."/"Short/Extended/Conveyance ...
// recommended polling time" heading to its stable generic name (§4.3.4
// point 5).
func timeLengthKey(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "total time"):
		return "ata_smart_data/offline_data_collection/completion_seconds"
	case strings.Contains(lower, "short"):
		return "ata_smart_data/self_test/polling_minutes/short"
	case strings.Contains(lower, "extended"):
		return "ata_smart_data/self_test/polling_minutes/extended"
	case strings.Contains(lower, "conveyance"):
		return "ata_smart_data/self_test/polling_minutes/conveyance"
	default:
		return ""
	}
}

// subcapRule matches one "one sentence per line" fact inside a capability
// group's strvalue and emits the corresponding boolean/string property
// (§4.3.4 point 6).
type subcapRule struct {
	match   *regexp.Regexp
	generic string
	value   func(line string, m []string) Value
}

var subcapRules = []subcapRule{
	{regexp.MustCompile(`(?i)^Offline data collection activity\b`), "ata_smart_data/offline_data_collection/status/string",
		func(line string, m []string) Value { return stringValue(line) }},
	{regexp.MustCompile(`(?i)^Auto Off-?line Data Collection:\s*(\w+)`), "ata_smart_data/offline_data_collection/auto_enabled",
		func(line string, m []string) Value { return boolValue(strings.EqualFold(m[1], "Enabled")) }},
	{regexp.MustCompile(`(?i)^SMART execute Off-?line immediate\b`), "ata_smart_data/capabilities/exec_offline_immediate_supported",
		func(line string, m []string) Value { return boolValue(true) }},
	{regexp.MustCompile(`(?i)^(No )?Auto Off-?line data collection (on/off )?support`), "ata_smart_data/capabilities/auto_offline_data_collection_supported",
		func(line string, m []string) Value { return boolValue(m[1] == "") }},
	{regexp.MustCompile(`(?i)^(Suspend|Abort) Off-?line collection upon new command`), "ata_smart_data/capabilities/offline_is_aborted_upon_new_cmd",
		func(line string, m []string) Value { return boolValue(strings.EqualFold(m[1], "Abort")) }},
	{regexp.MustCompile(`(?i)^(No )?Off-?line surface scan supported`), "ata_smart_data/capabilities/offline_surface_scan_supported",
		func(line string, m []string) Value { return boolValue(m[1] == "") }},
	{regexp.MustCompile(`(?i)^(No )?Self-test supported`), "ata_smart_data/capabilities/self_tests_supported",
		func(line string, m []string) Value { return boolValue(m[1] == "") }},
	{regexp.MustCompile(`(?i)^(No )?Conveyance Self-test supported`), "ata_smart_data/capabilities/conveyance_self_test_supported",
		func(line string, m []string) Value { return boolValue(m[1] == "") }},
	{regexp.MustCompile(`(?i)^(No )?Selective Self-test supported`), "ata_smart_data/capabilities/selective_self_test_supported",
		func(line string, m []string) Value { return boolValue(m[1] == "") }},
	{regexp.MustCompile(`(?i)^SCT Status supported`), "ata_sct_capabilities/value/_present",
		func(line string, m []string) Value { return boolValue(true) }},
	{regexp.MustCompile(`(?i)^SCT Feature Control supported`), "ata_sct_capabilities/feature_control_supported",
		func(line string, m []string) Value { return boolValue(true) }},
	{regexp.MustCompile(`(?i)^SCT Data Table supported`), "ata_sct_capabilities/data_table_supported",
		func(line string, m []string) Value { return boolValue(true) }},
}

func splitSentences(s string) []string {
	parts := strings.Split(s, ".")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// selftestStatusTable matches canonical "last self-test status" sentences
// to a decoded SelftestStatus (§4.3.4 point 7).
var selftestStatusTable = []struct {
	match  *regexp.Regexp
	status SelftestStatus
}{
	{regexp.MustCompile(`(?is)previous self-test routine completed\s+without error`), SelftestCompletedNoError},
	{regexp.MustCompile(`(?is)self-test routine was aborted by the host`), SelftestAbortedByHost},
	{regexp.MustCompile(`(?is)self-test routine was interrupted`), SelftestInterrupted},
	{regexp.MustCompile(`(?is)could not complete.*fatal or unknown`), SelftestFatalOrUnknown},
	{regexp.MustCompile(`(?is)completed having a test element that failed.*unknown test element`), SelftestComplUnknownFailure},
	{regexp.MustCompile(`(?is)completed having the electrical element`), SelftestComplElectricalFailure},
	{regexp.MustCompile(`(?is)completed having the servo`), SelftestComplServoFailure},
	{regexp.MustCompile(`(?is)completed having the read element`), SelftestComplReadFailure},
	{regexp.MustCompile(`(?is)completed having a test element that failed and the device is suspected of having handling damage`), SelftestComplHandlingDamage},
	{regexp.MustCompile(`(?is)self-test routine in progress`), SelftestInProgress},
	{regexp.MustCompile(`(?is)self-test routine.*reserved`), SelftestReserved},
}

func decodeSelftestStatus(text string) (SelftestStatus, string) {
	for _, entry := range selftestStatusTable {
		if entry.match.MatchString(text) {
			return entry.status, text
		}
	}
	return SelftestUnknown, text
}

var reRemainingPercent = regexp.MustCompile(`(\d+)%\s+of\s+test\s+remaining`)

// parseCapabilities implements §4.3.4.
func parseCapabilities(body string) ([]Property, []Diagnostic) {
	body = reVendorSpecificCollapse.ReplaceAllString(body, "$1\n")

	var props []Property
	var diags []Diagnostic

	for _, block := range splitCapabilityBlocks(body) {
		trimmedStrValue := strings.TrimSuffix(strings.TrimSpace(block.strValue), ".")
		normName := normalizeHeading(block.name)

		if trimmedStrValue == "minutes" || trimmedStrValue == "seconds" {
			key := timeLengthKey(block.name)
			if key == "" {
				key = "ata_smart_data/self_test/_unknown_polling_time"
			}
			seconds := block.num
			if trimmedStrValue == "minutes" {
				seconds *= 60
			}
			p := newProperty(SectionCapabilities, key, block.name, block.strValue, secondsValue(seconds))
			p.DisplayableName = block.name
			props = append(props, p)
			continue
		}

		entry := &CapabilityEntry{
			FlagValue:         uint16(block.num),
			ReportedFlagValue: block.numRaw,
			ReportedStrValue:  block.strValue,
			Lines:             splitSentences(block.strValue),
		}
		generic := capGroupNames[normName]
		p := newProperty(SectionCapabilities, generic, block.name, block.strValue, capabilityValue(entry))
		p.DisplayableName = block.name
		props = append(props, p)

		switch normName {
		case "selftestexecutionstatus":
			status, statusStr := decodeSelftestStatus(block.strValue)
			se := &SelftestEntry{Status: status, StatusStr: statusStr, RemainingPercent: -1}
			if m := reRemainingPercent.FindStringSubmatch(block.strValue); m != nil {
				if pct, err := strconv.Atoi(m[1]); err == nil {
					se.RemainingPercent = int8(pct)
				}
			}
			sp := newProperty(SectionCapabilities, "ata_smart_data/self_test/status/_last", block.name, block.strValue, selftestValue(se))
			sp.DisplayableName = "Last self-test status"
			props = append(props, sp)
		default:
			for _, line := range entry.Lines {
				for _, rule := range subcapRules {
					m := rule.match.FindStringSubmatch(line)
					if m == nil {
						continue
					}
					sp := newProperty(SectionCapabilities, rule.generic, line, line, rule.value(line, m))
					props = append(props, sp)
					break
				}
			}
		}
	}

	if len(props) == 0 {
		diags = append(diags, Diagnostic{Code: ErrDataError, Section: SectionCapabilities, Message: "capabilities section had no parseable blocks"})
	}

	return props, diags
}
