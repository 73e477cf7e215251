package disk

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"go.aimuz.me/mynt/smart"
)

// Attribute represents a single S.M.A.R.T. attribute.
type Attribute struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Value  int    `json:"value"`
	Worst  int    `json:"worst"`
	Thresh int    `json:"thresh"`
	Raw    string `json:"raw"`
	Status string `json:"status"` // "OK" or "FAILING"
}

// Report represents a S.M.A.R.T. health report.
type Report struct {
	Disk       string      `json:"disk"`
	Passed     bool        `json:"passed"`
	Attributes []Attribute `json:"attributes"`
	CheckedAt  time.Time   `json:"checked_at"`
}

// TestType represents a S.M.A.R.T. self-test type.
type TestType string

const (
	TestShort TestType = "short"
	TestLong  TestType = "long"
)

// TestStatus represents the status of a S.M.A.R.T. self-test.
type TestStatus struct {
	Running    bool   `json:"running"`
	Type       string `json:"type,omitempty"`
	Progress   int    `json:"progress,omitempty"`
	LastResult string `json:"last_result,omitempty"`
}

// DetailedReport includes extended SMART data for disk details view.
type DetailedReport struct {
	Disk                string      `json:"disk"`
	Passed              bool        `json:"passed"`
	Attributes          []Attribute `json:"attributes"`
	CheckedAt           time.Time   `json:"checked_at"`
	PowerOnHours        int64       `json:"power_on_hours"`
	PowerCycleCount     int64       `json:"power_cycle_count"`
	ReallocatedSectors  int64       `json:"reallocated_sectors"`
	PendingSectors      int64       `json:"pending_sectors"`
	UncorrectableErrors int64       `json:"uncorrectable_errors"`
	Temperature         int         `json:"temperature"`
}

// attributeStatus reports "FAILING" for any attribute that has ever tripped
// its threshold, matching smartctl's own WHEN_FAILED semantics.
func attributeStatus(entry *smart.AttributeEntry) string {
	if entry.WhenFailed != smart.WhenFailedNone {
		return "FAILING"
	}
	return "OK"
}

// uint8OrZero dereferences an optional attribute column, defaulting to 0
// when smartctl printed a placeholder ("-").
func uint8OrZero(v *uint8) int {
	if v == nil {
		return 0
	}
	return int(*v)
}

// toAttribute converts a parsed SMART attribute property into the API's
// flattened Attribute shape.
func toAttribute(p smart.Property) Attribute {
	entry := p.Value.Attribute
	return Attribute{
		ID:     int(entry.ID),
		Name:   p.ReportedName,
		Value:  uint8OrZero(entry.Value),
		Worst:  uint8OrZero(entry.Worst),
		Thresh: uint8OrZero(entry.Threshold),
		Raw:    entry.RawValueString,
		Status: attributeStatus(entry),
	}
}

// propertyByGenericName returns the first property carrying the given
// generic_name, if any.
func propertyByGenericName(props []smart.Property, genericName string) (smart.Property, bool) {
	for _, p := range props {
		if p.GenericName == genericName {
			return p, true
		}
	}
	return smart.Property{}, false
}

// attributesOf collects every parsed Attributes-section property, in the
// order smartctl printed them.
func attributesOf(result *smart.Result) []Attribute {
	var out []Attribute
	for _, p := range result.Properties {
		if p.Section == smart.SectionAttributes && p.Value.Kind == smart.ValueAttribute {
			out = append(out, toAttribute(p))
		}
	}
	return out
}

// Smart retrieves S.M.A.R.T. data for a disk.
func (m *Manager) Smart(ctx context.Context, name string) (*Report, error) {
	if runtime.GOOS == "darwin" {
		return mockReport(name), nil
	}

	out, err := m.runSmartctl(ctx, name)
	if err != nil {
		return nil, err
	}

	result, perr := smart.Parse(string(out))
	if perr != nil {
		return nil, fmt.Errorf("parse smartctl: %w", perr)
	}

	r := &Report{
		Disk:       name,
		CheckedAt:  time.Now(),
		Attributes: attributesOf(result),
	}
	if health, ok := propertyByGenericName(result.Properties, "smart_status/passed"); ok {
		r.Passed = health.Value.Bool
	}
	return r, nil
}

// SmartDetails retrieves comprehensive SMART data.
func (m *Manager) SmartDetails(ctx context.Context, name string) (*DetailedReport, error) {
	if runtime.GOOS == "darwin" {
		return mockDetailedReport(name), nil
	}

	out, err := m.runSmartctl(ctx, name)
	if err != nil {
		return nil, err
	}

	result, perr := smart.Parse(string(out))
	if perr != nil {
		return nil, fmt.Errorf("parse smartctl: %w", perr)
	}

	r := &DetailedReport{
		Disk:       name,
		CheckedAt:  time.Now(),
		Attributes: attributesOf(result),
	}
	if health, ok := propertyByGenericName(result.Properties, "smart_status/passed"); ok {
		r.Passed = health.Value.Bool
	}
	for _, p := range result.Properties {
		if p.Value.Kind != smart.ValueAttribute {
			continue
		}
		entry := p.Value.Attribute
		switch p.GenericName {
		case "attr_reallocated_sector_count":
			r.ReallocatedSectors = entry.RawValueInt
		case "attr_power_on_hours":
			if r.PowerOnHours == 0 {
				r.PowerOnHours = entry.RawValueInt
			}
		case "attr_power_cycle_count":
			r.PowerCycleCount = entry.RawValueInt
		case "attr_temperature_celsius":
			if r.Temperature == 0 {
				r.Temperature = int(entry.RawValueInt)
			}
		case "attr_current_pending_sector_count":
			r.PendingSectors = entry.RawValueInt
		case "attr_offline_uncorrectable":
			r.UncorrectableErrors = entry.RawValueInt
		}
	}
	return r, nil
}

// SmartTest starts a S.M.A.R.T. self-test.
func (m *Manager) SmartTest(ctx context.Context, name string, typ TestType) error {
	if runtime.GOOS == "darwin" {
		return nil
	}

	_, err := m.exec.CombinedOutput(ctx, "smartctl", "-t", string(typ), "/dev/"+name)
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			// Only treat bits 0-2 as fatal
			if exitErr.ExitCode()&smartExitFatalMask == 0 {
				return nil
			}
		}
		return fmt.Errorf("start smart test: %w", err)
	}
	return nil
}

// SmartTestStatus gets the current self-test status.
func (m *Manager) SmartTestStatus(ctx context.Context, name string) (*TestStatus, error) {
	if runtime.GOOS == "darwin" {
		return &TestStatus{LastResult: "Completed without error"}, nil
	}

	out, err := m.runSmartctl(ctx, name)
	if err != nil {
		return nil, err
	}

	result, perr := smart.Parse(string(out))
	if perr != nil {
		return nil, fmt.Errorf("parse smartctl: %w", perr)
	}

	s := &TestStatus{}
	if last, ok := propertyByGenericName(result.Properties, "ata_smart_data/self_test/status/_last"); ok {
		se := last.Value.Selftest
		s.LastResult = se.StatusStr
		if se.Status == smart.SelftestInProgress && se.RemainingPercent >= 0 {
			s.Running = true
			s.Progress = 100 - int(se.RemainingPercent)
		}
	}
	for _, p := range result.Properties {
		if p.Section == smart.SectionSelftestLog && p.Value.Kind == smart.ValueSelftest {
			s.Type = p.Value.Selftest.Type
			break
		}
	}
	return s, nil
}

// smartctl exit code bitmask values (from man smartctl).
const (
	// Fatal errors - command/device issues
	smartExitCmdLine   = 1 << 0 // Bit 0: Command line parse error
	smartExitDevOpen   = 1 << 1 // Bit 1: Device open failed
	smartExitCmdFailed = 1 << 2 // Bit 2: SMART command to disk failed

	// Disk health status - not fatal, still have valid data
	// Bit 3: SMART status check returned "DISK FAILING"
	// Bit 4: Prefail attributes <= threshold
	// Bit 5: Some attributes > threshold in past
	// Bit 6: Error log contains errors
	// Bit 7: Self-test log contains errors

	smartExitFatalMask = smartExitCmdLine | smartExitDevOpen | smartExitCmdFailed
)

// runSmartctl executes smartctl and handles exit codes using bitmask.
func (m *Manager) runSmartctl(ctx context.Context, name string) ([]byte, error) {
	out, err := m.exec.CombinedOutput(ctx, "smartctl", "-x", "/dev/"+name)
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code := exitErr.ExitCode()
			// Only treat bits 0-2 as fatal (command/device errors)
			// Bits 3-7 indicate disk health issues but data is still valid
			if code&smartExitFatalMask == 0 {
				return out, nil
			}
		}
		return nil, fmt.Errorf("smartctl: %w", err)
	}
	return out, nil
}

// mockReport returns mock data for macOS development.
func mockReport(name string) *Report {
	return &Report{
		Disk:      name,
		Passed:    true,
		CheckedAt: time.Now(),
		Attributes: []Attribute{
			{ID: 1, Name: "Raw_Read_Error_Rate", Value: 100, Worst: 100, Thresh: 51, Raw: "0", Status: "OK"},
			{ID: 5, Name: "Reallocated_Sector_Ct", Value: 100, Worst: 100, Thresh: 10, Raw: "0", Status: "OK"},
			{ID: 9, Name: "Power_On_Hours", Value: 99, Worst: 99, Thresh: 0, Raw: "1234", Status: "OK"},
			{ID: 194, Name: "Temperature_Celsius", Value: 64, Worst: 64, Thresh: 0, Raw: "36", Status: "OK"},
			{ID: 197, Name: "Current_Pending_Sector", Value: 100, Worst: 100, Thresh: 0, Raw: "0", Status: "OK"},
			{ID: 198, Name: "Offline_Uncorrectable", Value: 100, Worst: 100, Thresh: 0, Raw: "0", Status: "OK"},
		},
	}
}

// mockDetailedReport returns mock detailed data for macOS development.
func mockDetailedReport(name string) *DetailedReport {
	return &DetailedReport{
		Disk:                name,
		Passed:              true,
		CheckedAt:           time.Now(),
		PowerOnHours:        1234,
		PowerCycleCount:     42,
		Temperature:         36,
		ReallocatedSectors:  0,
		PendingSectors:      0,
		UncorrectableErrors: 0,
		Attributes: []Attribute{
			{ID: 1, Name: "Raw_Read_Error_Rate", Value: 100, Worst: 100, Thresh: 51, Raw: "0", Status: "OK"},
			{ID: 5, Name: "Reallocated_Sector_Ct", Value: 100, Worst: 100, Thresh: 10, Raw: "0", Status: "OK"},
			{ID: 9, Name: "Power_On_Hours", Value: 99, Worst: 99, Thresh: 0, Raw: "1234", Status: "OK"},
			{ID: 12, Name: "Power_Cycle_Count", Value: 100, Worst: 100, Thresh: 0, Raw: "42", Status: "OK"},
			{ID: 194, Name: "Temperature_Celsius", Value: 64, Worst: 64, Thresh: 0, Raw: "36", Status: "OK"},
			{ID: 197, Name: "Current_Pending_Sector", Value: 100, Worst: 100, Thresh: 0, Raw: "0", Status: "OK"},
			{ID: 198, Name: "Offline_Uncorrectable", Value: 100, Worst: 100, Thresh: 0, Raw: "0", Status: "OK"},
		},
	}
}

// parseTemperature extracts the leading integer Celsius reading from a raw
// attribute value string such as "36" or "36 (Min/Max 20/55)".
func parseTemperature(raw string) int {
	parts := strings.Fields(raw)
	if len(parts) > 0 {
		if t, err := strconv.Atoi(parts[0]); err == nil {
			return t
		}
	}
	return 0
}

// CheckHealth returns an error if the disk is failing S.M.A.R.T.
func (m *Manager) CheckHealth(ctx context.Context, name string) error {
	r, err := m.Smart(ctx, name)
	if err != nil {
		return err
	}
	if !r.Passed {
		return fmt.Errorf("disk %s failing S.M.A.R.T.", name)
	}
	return nil
}
