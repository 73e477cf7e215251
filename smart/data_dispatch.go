package smart

import (
	"regexp"
	"strings"
)

// subsectionRoute pairs a first-line matcher with the Section it routes to.
type subsectionRoute struct {
	match   *regexp.Regexp
	section Section
}

// subsectionRoutes implements the dispatch table of spec §6.2. Order
// matters only in that the first match wins; the patterns themselves are
// mutually exclusive in practice.
var subsectionRoutes = []subsectionRoute{
	{regexp.MustCompile(`^SMART overall-health self-assessment`), SectionHealth},
	{regexp.MustCompile(`^General SMART Values`), SectionCapabilities},
	{regexp.MustCompile(`^SMART Attributes Data Structure`), SectionAttributes},

	{regexp.MustCompile(`^General Purpose Log Directory`), SectionDirectoryLog},
	{regexp.MustCompile(`^SMART Log Directory Version`), SectionDirectoryLog},
	{regexp.MustCompile(`^Read GP Log Directory failed`), SectionDirectoryLog},
	{regexp.MustCompile(`^Log Directories not read due to '-F nologdir'`), SectionDirectoryLog},

	{regexp.MustCompile(`^SMART (Extended Comprehensive )?Error Log Version`), SectionErrorLog},
	{regexp.MustCompile(`^Warning: device does not support Error Logging`), SectionErrorLog},
	{regexp.MustCompile(`^SMART Error Log not supported`), SectionErrorLog},
	{regexp.MustCompile(`^Read SMART Error Log failed`), SectionErrorLog},

	{regexp.MustCompile(`^SMART (Extended )?Self-test [Ll]og`), SectionSelftestLog},
	{regexp.MustCompile(`^Warning: device does not support Self Test Logging`), SectionSelftestLog},
	{regexp.MustCompile(`^Read SMART Self-test Log failed`), SectionSelftestLog},
	{regexp.MustCompile(`^SMART Self-test Log not supported`), SectionSelftestLog},

	{regexp.MustCompile(`^SMART Selective self-test log`), SectionSelectiveSelftestLog},
	{regexp.MustCompile(`^Device does not support Selective Self Tests/Logging`), SectionSelectiveSelftestLog},
	{regexp.MustCompile(`^Read SMART Selective Self-test Log failed`), SectionSelectiveSelftestLog},

	{regexp.MustCompile(`^SCT Status Version`), SectionTemperatureLog},
	{regexp.MustCompile(`^SCT Commands not supported`), SectionTemperatureLog},
	{regexp.MustCompile(`^Error unknown SCT Temperature History Format Version`), SectionTemperatureLog},
	{regexp.MustCompile(`^Another SCT command is executing, abort Read Data Table`), SectionTemperatureLog},

	{regexp.MustCompile(`^SCT Error Recovery Control command not supported`), SectionErcLog},
	{regexp.MustCompile(`^SCT \(Get\) Error Recovery Control command failed`), SectionErcLog},
	{regexp.MustCompile(`^SCT Error Recovery Control`), SectionErcLog},

	{regexp.MustCompile(`^Device Statistics \(.*\) not supported`), SectionDevstat},
	{regexp.MustCompile(`^Device Statistics \(.*\)`), SectionDevstat},
	{regexp.MustCompile(`^Read Device Statistics page.*failed`), SectionDevstat},

	{regexp.MustCompile(`^SATA Phy Event Counters \(GP Log 0x11\) not supported`), SectionPhyLog},
	{regexp.MustCompile(`^SATA Phy Event Counters`), SectionPhyLog},
	{regexp.MustCompile(`^Read SATA Phy Event Counters failed`), SectionPhyLog},
}

// continuationPrefixes lists the prefixes that mark a "\n\n"-delimited chunk
// as a continuation of the previous chunk rather than a new subsection.
var continuationPrefixes = []string{
	"  ",
	"Error ",
	"SCT Temperature History Version",
	"Index    ",
	"Read SCT Temperature History failed",
}

// mergeContinuations re-joins chunks that begin with a continuation prefix
// back onto the preceding chunk.
func mergeContinuations(chunks []string) []string {
	var out []string
	for _, chunk := range chunks {
		isContinuation := false
		for _, prefix := range continuationPrefixes {
			if strings.HasPrefix(chunk, prefix) {
				isContinuation = true
				break
			}
		}
		if isContinuation && len(out) > 0 {
			out[len(out)-1] = out[len(out)-1] + "\n\n" + chunk
			continue
		}
		out = append(out, chunk)
	}
	return out
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}

func classifySubsection(chunk string) (Section, bool) {
	line := firstLine(chunk)
	for _, route := range subsectionRoutes {
		if route.match.MatchString(line) {
			return route.section, true
		}
	}
	return "", false
}

// parseDataSection implements §4.3.3: split the READ SMART DATA body into
// logical subsections and route each to its C3 parser.
func parseDataSection(body string) ([]Property, []Diagnostic, bool) {
	rawChunks := strings.Split(body, "\n\n")
	chunks := mergeContinuations(rawChunks)

	var props []Property
	var diags []Diagnostic
	parsedAny := false

	for _, chunk := range chunks {
		chunk = strings.Trim(chunk, "\n")
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		section, ok := classifySubsection(chunk)
		if !ok {
			diags = append(diags, Diagnostic{
				Code:    ErrUnknownSection,
				Message: "unrecognized data subsection: " + firstLine(chunk),
			})
			continue
		}

		var subProps []Property
		var subDiags []Diagnostic
		switch section {
		case SectionHealth:
			subProps, subDiags = parseHealth(chunk)
		case SectionCapabilities:
			subProps, subDiags = parseCapabilities(chunk)
		case SectionAttributes:
			subProps, subDiags = parseAttributes(chunk)
		case SectionDirectoryLog:
			subProps, subDiags = parseDirectoryLog(chunk)
		case SectionErrorLog:
			subProps, subDiags = parseErrorLog(chunk)
		case SectionSelftestLog:
			subProps, subDiags = parseSelftestLog(chunk)
		case SectionSelectiveSelftestLog:
			subProps, subDiags = parseSelectiveSelftestLog(chunk)
		case SectionTemperatureLog:
			subProps, subDiags = parseTemperatureLog(chunk)
		case SectionErcLog:
			subProps, subDiags = parseErcLog(chunk)
		case SectionDevstat:
			subProps, subDiags = parseDevstat(chunk)
		case SectionPhyLog:
			subProps, subDiags = parsePhyLog(chunk)
		}

		props = append(props, subProps...)
		diags = append(diags, subDiags...)
		if len(subProps) > 0 {
			parsedAny = true
		}
	}

	return props, diags, parsedAny
}
