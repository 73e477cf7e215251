package smart

import (
	"strconv"
	"strings"
)

// Parse implements the top-level entry point of §6.1: it runs the
// preprocessor (C1), section splitter and subsection parsers (C2/C3), then
// a finalization pass that resolves descriptions (C4) and severities (C5)
// for every property, using the package's built-in database and the
// default error-type severity hook.
func Parse(text string) (*Result, *ParseError) {
	return ParseWithOptions(text, DefaultDatabase(), DefaultErrorTypeSeverity)
}

// ParseWithOptions is Parse with an explicit database and error-type
// severity hook, for callers that want to substitute their own (tests, or
// a UI that colors unrecognized error tokens differently).
func ParseWithOptions(text string, db *Database, errorTypeSeverity func(string) WarningLevel) (*Result, *ParseError) {
	if strings.TrimSpace(text) == "" {
		return nil, newParseError(ErrEmptyInput, "input was empty or all whitespace")
	}

	cleaned, checksumProps := preprocess(text)

	split, perr := splitIntoSections(cleaned)
	if perr != nil {
		return nil, perr
	}

	properties := make([]Property, 0, len(checksumProps)+len(split.properties))
	properties = append(properties, checksumProps...)
	properties = append(properties, split.properties...)

	diskClass := detectDiskClass(properties)
	for i := range properties {
		db.Classify(&properties[i], diskClass, errorTypeSeverity)
	}

	return &Result{Properties: properties, Diagnostics: split.diagnostics}, nil
}

// detectDiskClass infers the device's disk class from the rotation_rate
// Info property: a reported rate of 0 means solid-state, a positive rate
// means rotational. Absent the property, lookups fall back to Any.
func detectDiskClass(properties []Property) DiskClass {
	for _, p := range properties {
		if p.GenericName != "rotation_rate" {
			continue
		}
		if p.Value.Kind != ValueInteger {
			continue
		}
		if p.Value.Int == 0 {
			return DiskClassSSD
		}
		return DiskClassHDD
	}
	return DiskClassAny
}

// Classify applies Database.Classify to a single property using the
// built-in database, Any disk class, and the default error-type severity
// hook; it exists to match §6.5's minimal `classify(&mut Property)`
// surface for callers that already know a property's context and want to
// reclassify it on its own (e.g. after a UI-driven edit to warning
// thresholds is out of scope, but tests exercise single properties this
// way).
func Classify(p *Property) {
	DefaultDatabase().Classify(p, DiskClassAny, DefaultErrorTypeSeverity)
}

// Classify resolves a property's displayable_name/description from the
// database (for Attributes and Devstat rows) and then assigns its warning
// level and reason, appending the reason onto the description for UI
// display (§4.3.7).
func (db *Database) Classify(p *Property, diskClass DiskClass, errorTypeSeverity func(string) WarningLevel) {
	if errorTypeSeverity == nil {
		errorTypeSeverity = DefaultErrorTypeSeverity
	}

	p.WarningLevel = WarningNone
	p.WarningReason = ""

	switch p.Section {
	case SectionAttributes:
		p.Description = ""
		if p.Value.Kind == ValueAttribute && p.Value.Attribute != nil {
			describeAttribute(db, p, diskClass)
		}
	case SectionDevstat:
		p.Description = ""
		if p.Value.Kind == ValueStatistic && p.Value.Statistic != nil {
			describeStatistic(db, p)
		}
	default:
		p.Description = ""
	}

	applySeverity(p, errorTypeSeverity)

	if p.WarningReason != "" {
		p.Description = appendWarningReason(p.Description, p.WarningReason)
	}
}

func describeAttribute(db *Database, p *Property, diskClass DiskClass) {
	entry := p.Value.Attribute
	desc, found := db.FindAttribute(entry.ID, p.ReportedName, diskClass)

	display, annotate := displayNameForAttribute(p.ReportedName, desc, found)
	p.DisplayableName = display

	if !found {
		p.GenericName = "attr_unknown/" + strconv.Itoa(int(entry.ID))
		return
	}

	p.GenericName = desc.GenericName
	p.Description = desc.Description
	if annotate {
		p.Description = appendReportedAsAnnotation(p.Description, p.ReportedName)
	}
}

func describeStatistic(db *Database, p *Property) {
	desc, found := db.FindStatistic(p.ReportedName)
	if !found {
		return
	}
	p.GenericName = desc.GenericName
	p.DisplayableName = desc.ReadableName
	p.Description = desc.Description
}

// appendWarningReason implements the description/reason concatenation
// described in §4.3.7.
func appendWarningReason(description, reason string) string {
	if reason == "" {
		return description
	}
	if description == "" {
		return reason
	}
	return description + "\n\n" + reason
}
