package smart

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const sampleSmartctlOutput = `smartctl 7.2 2020-12-30 r5155 [x86_64-linux-5.4.0] (local build)
Copyright (C) 2002-20, Bruce Allen, Christian Franke, www.smartmontools.org

=== START OF INFORMATION SECTION ===
Device Model:     ST3500630AS
Serial Number:    9QG0FGZ8
Firmware Version: 3.AAD
User Capacity:    500,107,862,016 bytes [500 GB]
Rotation Rate:    7200 rpm
ATA Version is:   ATA8-ACS
SMART support is: Available - device has SMART capability.
SMART support is: Enabled

Warning! SMART Attribute Data Structure error: invalid SMART checksum.

=== START OF READ SMART DATA SECTION ===
SMART overall-health self-assessment test result: PASSED

SMART Attributes Data Structure revision number: 16
ID# ATTRIBUTE_NAME          FLAG     VALUE WORST THRESH TYPE      UPDATED  WHEN_FAILED RAW_VALUE
  5 Reallocated_Sector_Ct   0x0033   100   100   010    Pre-fail  Always   FAILING_NOW       42
  9 Power_On_Hours          0x0032   080   080   000    Old_age   Always       -           17534

SMART Error Log Version: 1
ATA Error Count: 2
  CR = Command Register
Error 2 occurred at disk power-on lifetime: 100 hours
  device was active or idle
  Error: UNC
Error 1 occurred at disk power-on lifetime: 50 hours
  device was active or idle
  Error: ICRC, ABRT
`

func TestParse_EndToEnd(t *testing.T) {
	result, perr := Parse(sampleSmartctlOutput)
	if perr != nil {
		t.Fatalf("Parse returned fatal error: %v", perr)
	}

	byGeneric := map[string]Property{}
	for _, p := range result.Properties {
		if p.GenericName != "" {
			byGeneric[p.GenericName] = p
		}
	}

	version, ok := byGeneric["smartctl/version/_merged"]
	if !ok || version.Value.Str != "7.2" {
		t.Errorf("smartctl/version/_merged = %+v, want 7.2", version)
	}
	if _, ok := byGeneric["smartctl/version/_merged_full"]; !ok {
		t.Errorf("missing smartctl/version/_merged_full")
	}

	model, ok := byGeneric["model_name"]
	if !ok || model.Value.Str != "ST3500630AS" {
		t.Errorf("model_name = %+v, want ST3500630AS", model)
	}

	checksum, ok := byGeneric["_text_only/attribute_data_checksum_error"]
	if !ok {
		t.Fatalf("missing checksum-error property")
	}
	if checksum.WarningLevel != WarningWarning {
		t.Errorf("checksum-error WarningLevel = %v, want Warning", checksum.WarningLevel)
	}

	var reallocated, powerOnHours Property
	for _, p := range result.Properties {
		if p.Section != SectionAttributes || p.Value.Kind != ValueAttribute {
			continue
		}
		switch p.Value.Attribute.ID {
		case 5:
			reallocated = p
		case 9:
			powerOnHours = p
		}
	}
	if reallocated.GenericName != "attr_reallocated_sector_count" {
		t.Errorf("attribute id=5 GenericName = %q", reallocated.GenericName)
	}
	if reallocated.WarningLevel != WarningAlert {
		t.Errorf("attribute id=5 WarningLevel = %v, want Alert (prefail failing now)", reallocated.WarningLevel)
	}
	if powerOnHours.GenericName != "attr_power_on_hours" {
		t.Errorf("attribute id=9 GenericName = %q", powerOnHours.GenericName)
	}
	if powerOnHours.WarningLevel != WarningNone {
		t.Errorf("attribute id=9 WarningLevel = %v, want None", powerOnHours.WarningLevel)
	}

	errCount, ok := byGeneric["ata_smart_error_log/extended/count"]
	if !ok || errCount.Value.Int != 2 {
		t.Errorf("ata_smart_error_log/extended/count = %+v, want 2", errCount)
	}
	if errCount.WarningLevel != WarningNotice {
		t.Errorf("error count WarningLevel = %v, want Notice", errCount.WarningLevel)
	}

	var blocks []Property
	for _, p := range result.Properties {
		if p.Value.Kind == ValueErrorBlock {
			blocks = append(blocks, p)
		}
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d error blocks, want 2", len(blocks))
	}
	if blocks[0].Value.ErrorBlock.ErrorNum != 2 || blocks[1].Value.ErrorBlock.ErrorNum != 1 {
		t.Errorf("error blocks not ordered by error_num descending: %+v", blocks)
	}
	if blocks[0].WarningLevel != WarningAlert {
		t.Errorf("error block with UNC type WarningLevel = %v, want Alert", blocks[0].WarningLevel)
	}
	if blocks[1].WarningLevel != WarningWarning {
		t.Errorf("error block with ICRC/ABRT types WarningLevel = %v, want Warning", blocks[1].WarningLevel)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, perr := Parse("   \n\t  ")
	require.NotNil(t, perr)
	require.Equal(t, ErrEmptyInput, perr.Code)
}

func TestParse_NoVersionBanner(t *testing.T) {
	_, perr := Parse("=== START OF INFORMATION SECTION ===\nDevice Model: foo\n")
	require.NotNil(t, perr)
	require.Equal(t, ErrNoVersion, perr.Code)
}

func TestParse_NoSectionMarkers(t *testing.T) {
	_, perr := Parse("smartctl 7.2 2020-12-30 r5155\nnothing else here\n")
	require.NotNil(t, perr)
	require.Equal(t, ErrNoSection, perr.Code)
}

// comparableProperty is the projection of a Property that newline
// normalization must preserve exactly; the full struct carries pointer
// fields (*AttributeEntry, etc.) that cmp would otherwise compare by value
// recursively, which is correct but noisier to read on failure.
type comparableProperty struct {
	Section      Section
	GenericName  string
	WarningLevel WarningLevel
}

func projectProperties(props []Property) []comparableProperty {
	out := make([]comparableProperty, len(props))
	for i, p := range props {
		out[i] = comparableProperty{Section: p.Section, GenericName: p.GenericName, WarningLevel: p.WarningLevel}
	}
	return out
}

// TestParse_NewlineNormalization locks in §8's "parse(text) ==
// parse(text_with_CRLF_translated_to_LF)" invariant for the property
// count and every generic_name/warning_level pair.
func TestParse_NewlineNormalization(t *testing.T) {
	crlf := strings.ReplaceAll(sampleSmartctlOutput, "\n", "\r\n")

	lf, perr := Parse(sampleSmartctlOutput)
	require.Nil(t, perr)
	withCR, perr := Parse(crlf)
	require.Nil(t, perr)

	if diff := cmp.Diff(projectProperties(lf.Properties), projectProperties(withCR.Properties)); diff != "" {
		t.Errorf("LF vs CRLF property projection mismatch (-lf +crlf):\n%s", diff)
	}
}
