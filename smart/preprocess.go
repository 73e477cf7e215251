package smart

import (
	"regexp"
	"strings"
)

// checksumSectionMapping maps the human name inside a
// "Warning! SMART (<name>) Structure error: invalid SMART checksum." line to
// the section and generic-name slug the synthesized Property should carry.
var checksumSectionMapping = map[string]struct {
	section Section
	slug    string
}{
	"Attribute Data":       {SectionAttributes, "attribute_data"},
	"Attribute Thresholds": {SectionAttributes, "attribute_thresholds"},
	"ATA Error Log":        {SectionErrorLog, "ata_error_log"},
	"Self-Test Log":        {SectionSelftestLog, "self_test_log"},
}

var reChecksumWarning = regexp.MustCompile(`(?m)^Warning! SMART (Attribute Data|Attribute Thresholds|ATA Error Log|Self-Test Log) Structure error: invalid SMART checksum\.\s*\n?`)

var reTranslationHint = regexp.MustCompile(`(?m)^May need -F samsung or -F samsung2 enabled; see manual for details\.\s*\n?`)

var reAtaErrorCountBlank = regexp.MustCompile(`(?m)^(Warning: ATA error count.*)\n\n`)

// benignWarnings are lines that must end up isolated in their own
// double-newline-delimited chunk, because merged with a neighboring line
// they would prevent that neighbor's subsection from being detected.
var benignWarnings = []string{
	"Warning: device does not support Error Logging",
	"Warning: device does not support Self Test Logging",
	"Device does not support Selective Self Tests/Logging",
	"Warning: device does not support SCT Commands",
}

// noiseLinePatterns match lines that must be deleted outright because they
// otherwise corrupt subsection boundary detection.
var noiseLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^ATA_READ_LOG_EXT.*failed:.*\n?`),
	regexp.MustCompile(`(?m)^SMART WRITE LOG does not return COUNT and LBA_LOW register.*\n?`),
	regexp.MustCompile(`(?m)^Read SCT Status failed:.*\n?`),
	regexp.MustCompile(`(?m)^Unknown SCT Status format version.*\n?`),
	regexp.MustCompile(`(?m)^Read SCT Data Table failed:.*\n?`),
	regexp.MustCompile(`(?m)^Write SCT Data Table failed:.*\n?`),
	regexp.MustCompile(`(?m)^Unexpected SCT status \(.*\).*\n?`),
}

// normalizeNewlines converts CRLF and lone CR to LF, then trims the result.
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text)
}

// extractChecksumErrors removes every checksum-warning line from text and
// returns the synthesized Property for each one, in the order encountered.
func extractChecksumErrors(text string) (string, []Property) {
	var props []Property
	matches := reChecksumWarning.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, nil
	}
	for _, m := range matches {
		name := text[m[2]:m[3]]
		mapping, ok := checksumSectionMapping[name]
		if !ok {
			continue
		}
		p := newProperty(mapping.section,
			"_text_only/"+mapping.slug+"_checksum_error",
			"", "checksum error", stringValue("checksum error"))
		p.WarningLevel = WarningWarning
		props = append(props, p)
	}
	text = reChecksumWarning.ReplaceAllString(text, "")
	return text, props
}

// removeTranslationHint deletes the smartctl -F samsung translation hint
// line, which carries no parseable content and otherwise pollutes the Info
// section.
func removeTranslationHint(text string) string {
	return reTranslationHint.ReplaceAllString(text, "")
}

// collapseAtaErrorCountBlank removes the spurious blank line that follows a
// "Warning: ATA error count..." line so that line does not get split into
// its own (headerless) subsection.
func collapseAtaErrorCountBlank(text string) string {
	return reAtaErrorCountBlank.ReplaceAllString(text, "$1\n")
}

// padBenignWarnings ensures each benign warning line is preceded and
// followed by a blank line, so the section splitter's double-newline
// convention carves it into its own subsection rather than merging it with
// a neighbor.
func padBenignWarnings(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		isBenign := false
		for _, w := range benignWarnings {
			if trimmed == w {
				isBenign = true
				break
			}
		}
		if isBenign {
			if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
				out = append(out, "")
			}
			out = append(out, line, "")
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// deleteNoiseLines removes lines that never carry semantic content but
// would otherwise break subsection detection.
func deleteNoiseLines(text string) string {
	for _, re := range noiseLinePatterns {
		text = re.ReplaceAllString(text, "")
	}
	return text
}

// preprocess runs the full C1 pipeline and returns the cleaned text plus any
// properties synthesized along the way (currently only checksum-error
// properties). The preprocessor never fails: any step that finds nothing to
// do is a no-op.
func preprocess(text string) (string, []Property) {
	text = normalizeNewlines(text)
	text, checksumProps := extractChecksumErrors(text)
	text = removeTranslationHint(text)
	text = collapseAtaErrorCountBlank(text)
	text = padBenignWarnings(text)
	text = deleteNoiseLines(text)
	return strings.TrimSpace(text), checksumProps
}
