package smart

import (
	"regexp"
	"strconv"
	"strings"
)

var reVersionBanner = regexp.MustCompile(`(?m)^smartctl\s+(\d+(?:\.\d+)*)\s+(.*)$`)

var reStartMarker = regexp.MustCompile(`(?m)^=== START OF (.+?) SECTION ===\s*$`)

// minVersionOld is the floor for the "old text format" (pre-5.1 smartctl).
const minVersionOld = 5.0

// minVersionCurrent is the floor for the current text format.
const minVersionCurrent = 5.1

// parseVersionFloat extracts the major.minor as a float for threshold
// comparison; smartctl versions like "7.2" parse directly, "7.1-1" style
// suffixes are stripped by the regex's capture boundary already.
func parseVersionFloat(v string) (float64, bool) {
	parts := strings.SplitN(v, ".", 3)
	if len(parts) < 2 {
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	f, err := strconv.ParseFloat(parts[0]+"."+parts[1], 64)
	return f, err == nil
}

// splitVersion locates the version banner, returning the bare version
// string, the full banner line (trimmed), and whether it was found.
func splitVersion(text string) (version, full string, found bool) {
	m := reVersionBanner.FindStringSubmatchIndex(text)
	if m == nil {
		return "", "", false
	}
	version = text[m[2]:m[3]]
	full = strings.TrimSpace(text[m[0]:m[1]])
	return version, full, true
}

// rawSection is a single "=== START OF ... SECTION ===" block.
type rawSection struct {
	header string
	body   string
}

// splitSections scans text for START markers and returns the (header, body)
// pairs between consecutive markers (body runs to the next marker or EOF).
func splitSections(text string) []rawSection {
	locs := reStartMarker.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	sections := make([]rawSection, 0, len(locs))
	for i, loc := range locs {
		header := text[loc[2]:loc[3]]
		bodyStart := loc[1]
		bodyEnd := len(text)
		if i+1 < len(locs) {
			bodyEnd = locs[i+1][0]
		}
		sections = append(sections, rawSection{
			header: strings.TrimSpace(header),
			body:   strings.Trim(text[bodyStart:bodyEnd], "\n"),
		})
	}
	return sections
}

// splitResult is the outcome of the top-level section split: properties
// collected so far and any non-fatal diagnostics.
type splitResult struct {
	properties  []Property
	diagnostics []Diagnostic
}

// splitIntoSections implements C2: version detection, section carving, and
// dispatch to the per-subsection parsers in C3. It returns a *ParseError for
// fatal conditions (NoVersion, IncompatibleVersion, NoSection). The C4/C5
// description lookup and severity classification happen as a separate
// post-pass over the flattened property list, in Parse.
func splitIntoSections(text string) (*splitResult, *ParseError) {
	version, full, found := splitVersion(text)
	if !found {
		return nil, newParseError(ErrNoVersion, "no smartctl version banner found")
	}

	vf, ok := parseVersionFloat(version)
	if !ok || vf < minVersionOld {
		return nil, newParseError(ErrIncompatibleVersion, "smartctl version "+version+" is below the supported floor")
	}
	// vf between 5.0 and 5.1 is the "old text format"; both are accepted,
	// the attribute-table parser (C3) does its own old/brief detection.
	_ = minVersionCurrent

	sections := splitSections(text)
	if len(sections) == 0 {
		return nil, newParseError(ErrNoSection, "no === START OF ... SECTION === markers found")
	}

	res := &splitResult{}
	res.properties = append(res.properties,
		newProperty(SectionInfo, "smartctl/version/_merged", "", version, stringValue(version)),
		newProperty(SectionInfo, "smartctl/version/_merged_full", "", full, stringValue(full)),
	)

	anySubsectionParsed := false
	for _, sec := range sections {
		switch {
		case strings.HasPrefix(sec.header, "INFORMATION"):
			props, diags := parseInfo(sec.body)
			res.properties = append(res.properties, props...)
			res.diagnostics = append(res.diagnostics, diags...)
			anySubsectionParsed = anySubsectionParsed || len(props) > 0
		case strings.HasPrefix(sec.header, "READ SMART DATA"):
			props, diags, parsedAny := parseDataSection(sec.body)
			res.properties = append(res.properties, props...)
			res.diagnostics = append(res.diagnostics, diags...)
			anySubsectionParsed = anySubsectionParsed || parsedAny
		case strings.HasPrefix(sec.header, "ENABLE/DISABLE COMMANDS"),
			strings.HasPrefix(sec.header, "OFFLINE IMMEDIATE AND SELF-TEST"):
			// Side effects of control commands; intentionally ignored.
		default:
			res.diagnostics = append(res.diagnostics, Diagnostic{
				Code:    ErrUnknownSection,
				Message: "unrecognized section header: " + sec.header,
			})
		}
	}

	if !anySubsectionParsed {
		res.diagnostics = append(res.diagnostics, Diagnostic{
			Code:    ErrNoSubsectionsParsed,
			Message: "READ SMART DATA section contained no recognizable subsection",
		})
	}

	return res, nil
}
