package smart

import (
	"regexp"
	"strings"
)

// nameHumanizerReplacements is applied in order to a smartctl-reported
// attribute name (after padding it with boundary spaces) when the
// description database has no readable_name of its own to offer.
var nameHumanizerReplacements = []struct{ from, to string }{
	{"_", " "},
	{"/", " / "},
	{"Ct", "Count"},
	{"Cnt", "Count"},
	{"Tot", "Total"},
	{"Blk", "Block"},
	{"Cel", "Celsius"},
	{"Uncorrect", "Uncorrectable"},
	{"UNC", "Uncorrectable"},
	{"Offl", "Offline"},
	{"Err", "Error"},
	{"Errs", "Errors"},
	{"Perc", "Percent"},
	{"Avg", "Average"},
	{"Max", "Maximum"},
	{"Min", "Minimum"},
}

var reCollapseSpaces = regexp.MustCompile(`\s+`)

// humanizeReportedName turns a raw smartctl identifier like
// "Reallocated_Sector_Ct" into "Reallocated Sector Count".
func humanizeReportedName(reportedName string) string {
	s := " " + reportedName + " "
	for _, r := range nameHumanizerReplacements {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	s = reCollapseSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var reUnknownAttr = regexp.MustCompile(`^Unknown_(SSD|HDD)?_?Attr`)

// unknownAttributeLabel recognizes smartctl's placeholder names for
// attribute ids it has no description for itself
// (Unknown_Attribute, Unknown_SSD_Attribute, Unknown_HDD_Attribute) and
// returns the spaced-out display label for them.
func unknownAttributeLabel(reportedName string) (string, bool) {
	m := reUnknownAttr.FindStringSubmatch(reportedName)
	if m == nil {
		return "", false
	}
	switch m[1] {
	case "SSD":
		return "Unknown SSD Attribute", true
	case "HDD":
		return "Unknown HDD Attribute", true
	default:
		return "Unknown Attribute", true
	}
}

// normalizeForCompare strips punctuation and case from a name so that a
// humanized smartctl name can be compared to the database's readable_name
// without being fooled by a stray hyphen, parenthesis, or percent-sign
// spelling difference.
func normalizeForCompare(s string) string {
	s = strings.ReplaceAll(s, "Percent", "%")
	replacer := strings.NewReplacer("-", "", "(", "", ")", "", " ", "")
	return strings.ToLower(replacer.Replace(s))
}

// displayNameForAttribute resolves the label shown to the user for an
// attribute Property, and reports whether the raw smartctl name should be
// appended as a "Reported by smartctl as" annotation to its description
// because the humanized name and the database's readable_name disagree.
func displayNameForAttribute(reportedName string, desc AttributeDescription, found bool) (display string, annotate bool) {
	if found && desc.ReadableName != "" {
		humanized := humanizeReportedName(reportedName)
		if normalizeForCompare(humanized) != normalizeForCompare(desc.ReadableName) {
			return desc.ReadableName, true
		}
		return desc.ReadableName, false
	}
	if label, ok := unknownAttributeLabel(reportedName); ok {
		return label, false
	}
	return humanizeReportedName(reportedName), false
}

// appendReportedAsAnnotation appends the "Reported by smartctl as" note to
// a description when the displayed name doesn't match what the device
// actually reported.
func appendReportedAsAnnotation(description, reportedName string) string {
	note := `Reported by smartctl as "` + reportedName + `".`
	if description == "" {
		return note
	}
	return description + "\n\n" + note
}
