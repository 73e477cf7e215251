package smart

import (
	"regexp"
	"strings"

	"go.aimuz.me/mynt/logger"
)

var reInfoLine = regexp.MustCompile(`^([^:]+):[ \t]*(.*)$`)

var reInfoSkipLines = []*regexp.Regexp{
	regexp.MustCompile(`mandatory SMART command failed`),
	regexp.MustCompile(`Unexpected SCT status`),
	regexp.MustCompile(`^Write SCT \(Get\)`),
	regexp.MustCompile(`Read SCT Status failed`),
	regexp.MustCompile(`Read SMART Data failed`),
	regexp.MustCompile(`Unknown SCT Status format version`),
	regexp.MustCompile(`Read SMART Thresholds failed`),
	regexp.MustCompile(`Enabled status cached by OS`),
	regexp.MustCompile(`>> Terminate command early due to bad response`),
	regexp.MustCompile(`^scsiModePageOffset:`),
}

// infoHandler classifies a raw Info value string into a generic name,
// displayable name, and typed Value.
type infoHandler func(value string) (generic, displayable string, v Value)

var reInfoName = struct {
	modelFamily, modelName, vendorLike, serial, wwn, firmware, userCapacity,
	sectorSize, rotationRate, formFactor, deviceIs, ataVersion, sataVersion,
	localTime, smartSupport, misc *regexp.Regexp
}{
	modelFamily:  regexp.MustCompile(`^Model Family$`),
	modelName:    regexp.MustCompile(`^(Device Model|Device|Product)$`),
	vendorLike:   regexp.MustCompile(`^(Vendor|Revision|Device type|Compliance)$`),
	serial:       regexp.MustCompile(`^Serial Number$`),
	wwn:          regexp.MustCompile(`^LU WWN Device Id$`),
	firmware:     regexp.MustCompile(`^Firmware Version$`),
	userCapacity: regexp.MustCompile(`^User Capacity$`),
	sectorSize:   regexp.MustCompile(`^(Sector Sizes|Sector Size|Logical block size)$`),
	rotationRate: regexp.MustCompile(`^Rotation Rate$`),
	formFactor:   regexp.MustCompile(`^Form Factor$`),
	deviceIs:     regexp.MustCompile(`^Device is$`),
	ataVersion:   regexp.MustCompile(`^(ATA Version is|ATA Standard is)$`),
	sataVersion:  regexp.MustCompile(`^SATA Version is$`),
	localTime:    regexp.MustCompile(`^Local Time is$`),
	smartSupport: regexp.MustCompile(`^SMART support is$`),
	misc:         regexp.MustCompile(`^(AAM feature is|AAM level is|APM feature is|APM level is|Rd look-ahead is|Write cache is|Wt Cache Reorder|DSN feature is|Power mode was|Power mode is|ATA Security is)$`),
}

var vendorLikeGeneric = map[string]string{
	"Vendor":       "vendor",
	"Revision":     "revision",
	"Device type":  "device_type",
	"Compliance":   "compliance",
}

var sectorSizeGeneric = map[string]string{
	"Sector Sizes":         "sector_sizes",
	"Sector Size":          "sector_size",
	"Logical block size":   "logical_block_size",
}

var miscGeneric = map[string]string{
	"AAM feature is":   "aam/feature",
	"AAM level is":     "aam/level",
	"APM feature is":   "apm/feature",
	"APM level is":     "apm/level",
	"Rd look-ahead is": "rd_lookahead",
	"Write cache is":   "write_cache",
	"Wt Cache Reorder": "wt_cache_reorder",
	"DSN feature is":   "dsn_feature",
	"Power mode was":   "power_mode/was",
	"Power mode is":    "power_mode/is",
	"ATA Security is":  "ata_security",
}

// parseSmartSupport disambiguates the polyvalent "SMART support is" line.
func parseSmartSupport(value string) (generic string, v Value) {
	switch {
	case strings.HasPrefix(value, "Available - device has"):
		return "smart_support/available", boolValue(true)
	case strings.HasPrefix(value, "Enabled"):
		return "smart_support/enabled", boolValue(true)
	case strings.HasPrefix(value, "Disabled"):
		return "smart_support/enabled", boolValue(false)
	case strings.HasPrefix(value, "Unavailable"):
		return "smart_support/available", boolValue(false)
	case strings.HasPrefix(value, "Ambiguous"):
		return "smart_support/available", boolValue(true)
	default:
		return "smart_support/_unknown", stringValue(value)
	}
}

// classifyInfoLine turns one "<name>: <value>" line into one Property.
// Unknown identifiers are still emitted, as plain strings, per spec §4.3.1
// and §7 ("not errors"), and are logged at debug level.
func classifyInfoLine(name, value string) Property {
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)

	switch {
	case reInfoName.modelFamily.MatchString(name):
		return infoProp("model_family", name, value, stringValue(value))
	case reInfoName.modelName.MatchString(name):
		return infoProp("model_name", name, value, stringValue(value))
	case reInfoName.vendorLike.MatchString(name):
		return infoProp(vendorLikeGeneric[name], name, value, stringValue(value))
	case reInfoName.serial.MatchString(name):
		return infoProp("serial_number", name, value, stringValue(value))
	case reInfoName.wwn.MatchString(name):
		return infoProp("wwn/_merged", name, value, stringValue(value))
	case reInfoName.firmware.MatchString(name):
		return infoProp("firmware_version", name, value, stringValue(value))
	case reInfoName.userCapacity.MatchString(name):
		bytes, display := parseUserCapacity(value)
		p := infoProp("user_capacity/bytes", name, value, intValue(bytes))
		p.DisplayableName = display
		return p
	case reInfoName.sectorSize.MatchString(name):
		return infoProp(sectorSizeGeneric[name], name, value, stringValue(value))
	case reInfoName.rotationRate.MatchString(name):
		rpm := firstInt(value)
		return infoProp("rotation_rate", name, value, intValue(rpm))
	case reInfoName.formFactor.MatchString(name):
		return infoProp("form_factor/name", name, value, stringValue(value))
	case reInfoName.deviceIs.MatchString(name):
		inDB := !strings.HasPrefix(value, "Not in ")
		return infoProp("in_smartctl_database", name, value, boolValue(inDB))
	case reInfoName.ataVersion.MatchString(name):
		return infoProp("ata_version/string", name, value, stringValue(value))
	case reInfoName.sataVersion.MatchString(name):
		return infoProp("sata_version/string", name, value, stringValue(value))
	case reInfoName.localTime.MatchString(name):
		return infoProp("local_time/asctime", name, value, stringValue(value))
	case reInfoName.smartSupport.MatchString(name):
		generic, v := parseSmartSupport(value)
		return infoProp(generic, name, value, v)
	case reInfoName.misc.MatchString(name):
		return infoProp(miscGeneric[name], name, value, stringValue(value))
	default:
		logger.Debug("smart: unrecognized info identifier", "name", name)
		p := infoProp("", name, value, stringValue(value))
		return p
	}
}

func infoProp(generic, reportedName, reportedValue string, v Value) Property {
	p := newProperty(SectionInfo, generic, reportedName, reportedValue, v)
	p.DisplayableName = reportedName
	return p
}

// parseInfo implements §4.3.1: the Info subsection line grammar plus the
// "==> WARNING:" block capture.
func parseInfo(body string) ([]Property, []Diagnostic) {
	var props []Property
	var diags []Diagnostic

	lines := strings.Split(body, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(strings.TrimSpace(trimmed), "==> WARNING:") {
			var block []string
			block = append(block, strings.TrimSpace(trimmed))
			j := i + 1
			for j < len(lines) && strings.TrimSpace(lines[j]) != "" {
				block = append(block, strings.TrimSpace(lines[j]))
				j++
			}
			i = j - 1
			text := strings.Join(block, "\n")
			p := newProperty(SectionInfo, "_text_only/info_warning", "", text, stringValue(text))
			p.WarningLevel = WarningNotice
			props = append(props, p)
			continue
		}

		skip := false
		for _, re := range reInfoSkipLines {
			if re.MatchString(trimmed) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		m := reInfoLine.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		props = append(props, classifyInfoLine(m[1], m[2]))
	}

	return props, diags
}
