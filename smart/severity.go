package smart

import "strings"

// DefaultErrorTypeSeverity is the built-in error_type -> warning_level hook
// (§6.4) used by the error log finalization step: the token lexicon
// (UNC, ICRC, ...) doubles as the UI's error-log coloring key, so it is
// kept as a small standalone table rather than folded into the rule
// tables below.
func DefaultErrorTypeSeverity(errorType string) WarningLevel {
	switch strings.ToUpper(strings.TrimSpace(errorType)) {
	case "UNC":
		return WarningAlert
	case "ICRC", "IDNF", "AMNF", "TK0NF":
		return WarningWarning
	case "ABRT", "EOM", "WP":
		return WarningNotice
	default:
		return WarningNotice
	}
}

// raiseSeverity keeps a property at the highest of its current level and a
// candidate level, recording the reason that produced the higher level.
func raiseSeverity(p *Property, level WarningLevel, reason string) {
	if level > p.WarningLevel {
		p.WarningLevel = level
		p.WarningReason = reason
	}
}

// classifyUniversal implements the checksum-error rule shared by every
// section (§4.5, "Universal").
func classifyUniversal(p *Property) {
	if strings.Contains(p.GenericName, "_checksum_error") {
		raiseSeverity(p, WarningWarning, "drive may have broken SMART implementation or is failing")
	}
}

func classifyInfoSeverity(p *Property) {
	switch p.GenericName {
	case "smart_support/available":
		if p.Value.Kind == ValueBool && !p.Value.Bool {
			raiseSeverity(p, WarningNotice, "device does not support SMART")
		}
	case "smart_support/enabled":
		if p.Value.Kind == ValueBool && !p.Value.Bool {
			raiseSeverity(p, WarningNotice, "SMART is disabled on this device")
		}
	case "_text_only/info_warning":
		raiseSeverity(p, WarningNotice, "smartctl reported a condition worth reviewing")
	}
}

func classifyHealthSeverity(p *Property) {
	if p.GenericName == "smart_status/passed" && p.Value.Kind == ValueBool && !p.Value.Bool {
		raiseSeverity(p, WarningAlert, "drive will FAIL very soon")
	}
}

// classifyAttributeSeverity implements §4.5's Attributes table plus the
// when_failed overrides, which take precedence over a generic_name-based
// hit on the same property.
func classifyAttributeSeverity(p *Property, entry *AttributeEntry) {
	raw := entry.RawValueInt

	switch p.GenericName {
	case "attr_reallocated_sector_count":
		if raw > 0 {
			raiseSeverity(p, WarningNotice, "sectors have been reallocated")
		}
	case "attr_spin_up_retry_count":
		if raw > 0 {
			raiseSeverity(p, WarningNotice, "spin-up has required retries")
		}
	case "attr_soft_read_error_rate":
		if raw > 0 {
			raiseSeverity(p, WarningNotice, "soft read errors are being corrected by firmware")
		}
	case "attr_temperature_celsius":
		if raw > 50 && raw <= 120 {
			raiseSeverity(p, WarningNotice, "drive temperature is elevated")
		}
	case "attr_temperature_celsius_x10":
		if raw > 500 {
			raiseSeverity(p, WarningNotice, "drive temperature is elevated")
		}
	case "attr_reallocation_event_count":
		if raw > 0 {
			raiseSeverity(p, WarningNotice, "reallocation events have occurred")
		}
	case "attr_current_pending_sector_count", "attr_total_pending_sectors":
		if raw > 0 {
			raiseSeverity(p, WarningNotice, "sectors are pending reallocation")
		}
	case "attr_offline_uncorrectable", "attr_total_attr_offline_uncorrectable":
		if raw > 0 {
			raiseSeverity(p, WarningNotice, "uncorrectable sectors were found during an offline scan")
		}
	case "attr_ssd_life_left":
		if entry.Value != nil && *entry.Value < 50 {
			raiseSeverity(p, WarningNotice, "SSD estimated remaining life is below half")
		}
	case "attr_ssd_life_used":
		if raw >= 50 {
			raiseSeverity(p, WarningNotice, "SSD estimated wear is at or above half its rated life")
		}
	}

	switch {
	case entry.WhenFailed == WhenFailedNow && entry.AttrType == AttrTypeOldAge:
		raiseSeverity(p, WarningWarning, "failing old-age attribute; wear-out")
	case entry.WhenFailed == WhenFailedNow && entry.AttrType == AttrTypePrefail:
		raiseSeverity(p, WarningAlert, "pre-fail failing; back up immediately")
	case entry.WhenFailed == WhenFailedPast && entry.AttrType == AttrTypePrefail:
		raiseSeverity(p, WarningWarning, "restored from failing; consider replacing")
	}
}

// classifyDevstatSeverity implements §4.5's Devstat table, matched by the
// description database's generic_name for the statistic.
func classifyDevstatSeverity(p *Property, entry *StatisticEntry) {
	raw := entry.ValueInt

	switch p.GenericName {
	case "stat_pending_error_count":
		if raw > 0 {
			raiseSeverity(p, WarningNotice, "errors are pending retry or recovery")
		}
	case "stat_utilization_usage_rate", "stat_workload_utilization":
		switch {
		case raw >= 100:
			raiseSeverity(p, WarningWarning, "utilization usage rate has reached its ceiling")
		case raw >= 50:
			raiseSeverity(p, WarningNotice, "utilization usage rate is elevated")
		}
	case "stat_reallocated_logical_sectors":
		switch {
		case strings.Contains(entry.Flags, "N") && raw <= 0:
			raiseSeverity(p, WarningWarning, "normalized reallocated-sector statistic has reached its floor")
		case raw > 0:
			raiseSeverity(p, WarningNotice, "logical sectors have been reallocated")
		}
	case "stat_mechanical_start_failures":
		if raw > 0 {
			raiseSeverity(p, WarningNotice, "the spindle motor has failed to start")
		}
	case "stat_reallocation_candidate_logical_sectors":
		if raw > 0 {
			raiseSeverity(p, WarningNotice, "logical sectors are candidates for reallocation")
		}
	case "stat_reported_uncorrectable_errors":
		if raw > 0 {
			raiseSeverity(p, WarningNotice, "uncorrectable errors have been reported to the host")
		}
	case "stat_current_temperature":
		if raw > 50 {
			raiseSeverity(p, WarningNotice, "drive temperature is elevated")
		}
	case "stat_time_in_over_temperature":
		if raw > 0 {
			raiseSeverity(p, WarningNotice, "the drive has spent time above its rated maximum temperature")
		}
	case "stat_time_in_under_temperature":
		if raw > 0 {
			raiseSeverity(p, WarningNotice, "the drive has spent time below its rated minimum temperature")
		}
	case "stat_percentage_used_endurance_indicator":
		switch {
		case raw >= 100:
			raiseSeverity(p, WarningWarning, "rated endurance has been consumed")
		case raw >= 50:
			raiseSeverity(p, WarningNotice, "endurance consumption is elevated")
		}
	}
}

func classifyErrorLogSeverity(p *Property, errorTypeSeverity func(string) WarningLevel) {
	if p.GenericName == "ata_smart_error_log/extended/count" && p.Value.Kind == ValueInteger && p.Value.Int > 0 {
		raiseSeverity(p, WarningNotice, "drive reporting internal errors")
	}
	if p.Value.Kind == ValueErrorBlock && p.Value.ErrorBlock != nil {
		level := WarningNone
		for _, t := range p.Value.ErrorBlock.ReportedTypes {
			if s := errorTypeSeverity(t); s > level {
				level = s
			}
		}
		if level > WarningNone {
			raiseSeverity(p, level, "internal errors; data may be at risk")
		}
	}
}

func classifyTemperatureLogSeverity(p *Property) {
	if p.GenericName == "ata_sct_status/temperature/current" && p.Value.Kind == ValueInteger && p.Value.Int > 50 {
		raiseSeverity(p, WarningNotice, "drive temperature is elevated")
	}
}

// applySeverity implements C5 for a single already-described property: it
// assigns the highest-severity matching rule from §4.5's per-section
// tables. db/diskClass are not needed here (descriptions are resolved by
// the caller beforehand); this function only reads GenericName and Value.
func applySeverity(p *Property, errorTypeSeverity func(string) WarningLevel) {
	classifyUniversal(p)

	switch p.Section {
	case SectionInfo:
		classifyInfoSeverity(p)
	case SectionHealth:
		classifyHealthSeverity(p)
	case SectionAttributes:
		if p.Value.Kind == ValueAttribute && p.Value.Attribute != nil {
			classifyAttributeSeverity(p, p.Value.Attribute)
		}
	case SectionDevstat:
		if p.Value.Kind == ValueStatistic && p.Value.Statistic != nil {
			classifyDevstatSeverity(p, p.Value.Statistic)
		}
	case SectionErrorLog:
		classifyErrorLogSeverity(p, errorTypeSeverity)
	case SectionTemperatureLog:
		classifyTemperatureLogSeverity(p)
	}
}
