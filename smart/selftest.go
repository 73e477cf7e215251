package smart

import (
	"regexp"
	"strconv"
	"strings"
)

var reSelftestRevision = regexp.MustCompile(`Self-test log structure revision number\s*(\d+)`)

var reSelftestRow = regexp.MustCompile(`^#\s*(\d+)\s+(\S.*?)\s{2,}(\S.*?)\s{2,}(\d+)%\s+(\d+)\s*(.*)$`)

// selftestShortStatusTable decodes the short status phrase used in
// self-test LOG table rows (as opposed to the long "last self-test status"
// sentence decoded in capabilities.go).
var selftestShortStatusTable = []struct {
	match  *regexp.Regexp
	status SelftestStatus
}{
	{regexp.MustCompile(`(?i)^Completed without error`), SelftestCompletedNoError},
	{regexp.MustCompile(`(?i)^Aborted by host`), SelftestAbortedByHost},
	{regexp.MustCompile(`(?i)^Interrupted`), SelftestInterrupted},
	{regexp.MustCompile(`(?i)^Self-test routine in progress`), SelftestInProgress},
	{regexp.MustCompile(`(?i)electrical`), SelftestComplElectricalFailure},
	{regexp.MustCompile(`(?i)servo`), SelftestComplServoFailure},
	{regexp.MustCompile(`(?i)read failure`), SelftestComplReadFailure},
	{regexp.MustCompile(`(?i)handling damage`), SelftestComplHandlingDamage},
	{regexp.MustCompile(`(?i)unknown (test element|failure)`), SelftestComplUnknownFailure},
	{regexp.MustCompile(`(?i)fatal`), SelftestFatalOrUnknown},
	{regexp.MustCompile(`(?i)reserved`), SelftestReserved},
}

func decodeSelftestShortStatus(s string) SelftestStatus {
	for _, e := range selftestShortStatusTable {
		if e.match.MatchString(s) {
			return e.status
		}
	}
	return SelftestUnknown
}

// parseSelftestLog implements the Self-test Log subsection of §4.3.6: a
// merged-text property, a revision property, a row-count property, and one
// SelftestEntry property per logged test.
func parseSelftestLog(body string) ([]Property, []Diagnostic) {
	var props []Property
	var diags []Diagnostic

	props = append(props, newProperty(SectionSelftestLog, "ata_smart_self_test_log/_merged", "", body, stringValue(body)))

	if m := reSelftestRevision.FindStringSubmatch(body); m != nil {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		props = append(props, newProperty(SectionSelftestLog, "ata_smart_self_test_log/extended/revision", "", m[1], intValue(n)))
	}

	count := 0
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimRight(line, " \t")
		m := reSelftestRow.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		count++

		testNum, _ := strconv.ParseUint(m[1], 10, 8)
		remaining, _ := strconv.Atoi(m[4])
		hours, _ := strconv.ParseUint(m[5], 10, 64)

		entry := &SelftestEntry{
			TestNum:          uint8(testNum),
			Type:             strings.TrimSpace(m[2]),
			Status:           decodeSelftestShortStatus(m[3]),
			StatusStr:        strings.TrimSpace(m[3]),
			RemainingPercent: int8(remaining),
			LifetimeHours:    hours,
			LBAOfFirstError:  strings.TrimSpace(m[6]),
		}

		name := "# " + m[1]
		p := newProperty(SectionSelftestLog, "", name, trimmed, selftestValue(entry))
		p.DisplayableName = name
		props = append(props, p)
	}

	props = append(props, newProperty(SectionSelftestLog, "ata_smart_self_test_log/extended/table/count", "", strconv.Itoa(count), intValue(int64(count))))

	if count == 0 {
		diags = append(diags, Diagnostic{Code: ErrDataError, Section: SectionSelftestLog, Message: "self-test log had no parseable rows"})
	}

	return props, diags
}
