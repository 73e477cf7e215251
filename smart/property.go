// Package smart parses the text output of smartctl -x into a typed property
// model, enriches it against a vendor-aware attribute/statistic description
// database, and assigns per-property warning severities.
//
// The package never talks to a device or spawns smartctl itself; callers
// (see go.aimuz.me/mynt/disk) are responsible for capturing smartctl's
// stdout and handing the raw text to Parse.
package smart

// Section identifies which logical part of smartctl's report a Property
// came from.
type Section string

const (
	SectionInfo                 Section = "info"
	SectionHealth               Section = "health"
	SectionCapabilities         Section = "capabilities"
	SectionAttributes           Section = "attributes"
	SectionDevstat              Section = "devstat"
	SectionErrorLog             Section = "error_log"
	SectionSelftestLog          Section = "selftest_log"
	SectionSelectiveSelftestLog Section = "selective_selftest_log"
	SectionTemperatureLog       Section = "temperature_log"
	SectionErcLog               Section = "erc_log"
	SectionPhyLog               Section = "phy_log"
	SectionDirectoryLog         Section = "directory_log"
)

// WarningLevel is the four-level severity the classifier assigns to a
// Property for UI coloring.
type WarningLevel int

const (
	WarningNone WarningLevel = iota
	WarningNotice
	WarningWarning
	WarningAlert
)

func (w WarningLevel) String() string {
	switch w {
	case WarningNotice:
		return "notice"
	case WarningWarning:
		return "warning"
	case WarningAlert:
		return "alert"
	default:
		return "none"
	}
}

// DiskClass disambiguates attribute descriptions by device technology.
type DiskClass int

const (
	DiskClassAny DiskClass = iota
	DiskClassHDD
	DiskClassSSD
)

// AttrType distinguishes imminent-failure attributes from wear-tracking ones.
type AttrType int

const (
	AttrTypeUnknown AttrType = iota
	AttrTypePrefail
	AttrTypeOldAge
)

// UpdateType records whether an attribute is updated continuously or only
// during offline data collection.
type UpdateType int

const (
	UpdateTypeUnknown UpdateType = iota
	UpdateTypeAlways
	UpdateTypeOffline
)

// WhenFailed records whether an attribute has ever tripped its threshold.
type WhenFailed int

const (
	WhenFailedNone WhenFailed = iota
	WhenFailedPast
	WhenFailedNow
	WhenFailedUnknown
)

// AttributeEntry is the typed payload of an Attributes-section Property.
type AttributeEntry struct {
	ID             uint8
	FlagRaw        string
	Value          *uint8
	Worst          *uint8
	Threshold      *uint8
	AttrType       AttrType
	UpdateType     UpdateType
	WhenFailed     WhenFailed
	RawValueString string
	RawValueInt    int64
}

// StatisticEntry is the typed payload of a Devstat-section Property.
type StatisticEntry struct {
	Page        uint8
	Offset      uint16
	Flags       string
	ValueString string
	ValueInt    int64
	IsHeader    bool
}

// CapabilityEntry is the typed payload of a Capabilities-section Property
// describing a bitmask-backed capability (as opposed to a time length).
type CapabilityEntry struct {
	FlagValue         uint16
	ReportedFlagValue string
	ReportedStrValue  string
	Lines             []string
}

// ErrorBlockEntry is the typed payload of an ErrorLog-section Property
// describing one recorded ATA error.
type ErrorBlockEntry struct {
	ErrorNum      uint32
	LifetimeHours uint64
	DeviceState   string
	ReportedTypes []string
	TypeMoreInfo  string
}

// SelftestStatus is the decoded outcome of a self-test log row or the
// "last self-test status" capability.
type SelftestStatus int

const (
	SelftestCompletedNoError SelftestStatus = iota
	SelftestAbortedByHost
	SelftestInterrupted
	SelftestFatalOrUnknown
	SelftestComplUnknownFailure
	SelftestComplElectricalFailure
	SelftestComplServoFailure
	SelftestComplReadFailure
	SelftestComplHandlingDamage
	SelftestInProgress
	SelftestReserved
	SelftestUnknown
)

// SelftestEntry is the typed payload of a SelftestLog-section Property.
type SelftestEntry struct {
	TestNum          uint8
	Type             string
	Status           SelftestStatus
	StatusStr        string
	RemainingPercent int8
	LifetimeHours    uint64
	LBAOfFirstError  string
}

// ValueKind tags which field of Value is meaningful.
type ValueKind int

const (
	ValueEmpty ValueKind = iota
	ValueBool
	ValueInteger
	ValueSeconds
	ValueString
	ValueAttribute
	ValueStatistic
	ValueCapability
	ValueErrorBlock
	ValueSelftest
)

// Value is a tagged union over the handful of shapes a Property's value can
// take. Only the field matching Kind is populated.
type Value struct {
	Kind       ValueKind
	Bool       bool
	Int        int64
	Str        string
	Attribute  *AttributeEntry
	Statistic  *StatisticEntry
	Capability *CapabilityEntry
	ErrorBlock *ErrorBlockEntry
	Selftest   *SelftestEntry
}

func emptyValue() Value                { return Value{Kind: ValueEmpty} }
func boolValue(b bool) Value           { return Value{Kind: ValueBool, Bool: b} }
func intValue(i int64) Value           { return Value{Kind: ValueInteger, Int: i} }
func secondsValue(i int64) Value       { return Value{Kind: ValueSeconds, Int: i} }
func stringValue(s string) Value       { return Value{Kind: ValueString, Str: s} }
func attributeValue(a *AttributeEntry) Value {
	return Value{Kind: ValueAttribute, Attribute: a}
}
func statisticValue(s *StatisticEntry) Value {
	return Value{Kind: ValueStatistic, Statistic: s}
}
func capabilityValue(c *CapabilityEntry) Value {
	return Value{Kind: ValueCapability, Capability: c}
}
func errorBlockValue(e *ErrorBlockEntry) Value {
	return Value{Kind: ValueErrorBlock, ErrorBlock: e}
}
func selftestValue(s *SelftestEntry) Value {
	return Value{Kind: ValueSelftest, Selftest: s}
}

// Property is the universal record emitted by the parser.
//
// Description holds the long-form explanatory text looked up from the
// attribute/statistic database (C4); it is not part of spec.md's minimal
// field list but is needed to carry that text through to the UI tooltip,
// where WarningReason is appended to it during finalization (§4.3.7).
type Property struct {
	Section         Section
	ReportedName    string
	GenericName     string
	DisplayableName string
	ReportedValue   string
	Value           Value
	WarningLevel    WarningLevel
	WarningReason   string
	Description     string
	ShowInUI        bool
}

// newProperty builds a Property with ShowInUI set to true; no parser in
// this package sets it to false.
func newProperty(section Section, genericName, reportedName, reportedValue string, v Value) Property {
	return Property{
		Section:       section,
		ReportedName:  reportedName,
		GenericName:   genericName,
		ReportedValue: reportedValue,
		Value:         v,
		ShowInUI:      true,
	}
}
