package smart

import "testing"

func TestParseAttributes_OldFormat(t *testing.T) {
	body := `ID# ATTRIBUTE_NAME          FLAG     VALUE WORST THRESH TYPE      UPDATED  WHEN_FAILED RAW_VALUE
  5 Reallocated_Sector_Ct   0x0033   100   100   010    Pre-fail  Always   FAILING_NOW       42`

	props, diags := parseAttributes(body)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if len(props) != 1 {
		t.Fatalf("got %d properties, want 1", len(props))
	}

	entry := props[0].Value.Attribute
	if entry == nil {
		t.Fatalf("expected an AttributeEntry")
	}
	if entry.ID != 5 {
		t.Errorf("ID = %d, want 5", entry.ID)
	}
	if entry.Value == nil || *entry.Value != 100 {
		t.Errorf("Value = %v, want 100", entry.Value)
	}
	if entry.Worst == nil || *entry.Worst != 100 {
		t.Errorf("Worst = %v, want 100", entry.Worst)
	}
	if entry.Threshold == nil || *entry.Threshold != 10 {
		t.Errorf("Threshold = %v, want 10", entry.Threshold)
	}
	if entry.AttrType != AttrTypePrefail {
		t.Errorf("AttrType = %v, want Prefail", entry.AttrType)
	}
	if entry.UpdateType != UpdateTypeAlways {
		t.Errorf("UpdateType = %v, want Always", entry.UpdateType)
	}
	if entry.WhenFailed != WhenFailedNow {
		t.Errorf("WhenFailed = %v, want Now", entry.WhenFailed)
	}
	if entry.RawValueInt != 42 {
		t.Errorf("RawValueInt = %d, want 42", entry.RawValueInt)
	}
}

func TestParseAttributes_ValueDashesAreAbsent(t *testing.T) {
	body := `ID# ATTRIBUTE_NAME          FLAG     VALUE WORST THRESH TYPE      UPDATED  WHEN_FAILED RAW_VALUE
  9 Power_On_Hours           0x0032   ---   ---   000    Old_age   Always       -       1234`

	props, _ := parseAttributes(body)
	if len(props) != 1 {
		t.Fatalf("got %d properties, want 1", len(props))
	}
	entry := props[0].Value.Attribute
	if entry.Value != nil {
		t.Errorf("Value = %v, want nil for a VALUE=--- row", entry.Value)
	}
}

// TestParseAttributes_RejectsLegendLines guards the fix for Open Question
// #2: a flag-legend line must never be mistaken for an attribute row.
func TestParseAttributes_RejectsLegendLines(t *testing.T) {
	body := `ID# ATTRIBUTE_NAME          FLAG     VALUE WORST THRESH TYPE      UPDATED  WHEN_FAILED RAW_VALUE
  5 Reallocated_Sector_Ct   0x0033   100   100   010    Pre-fail  Always       -       0
                            ||||||_ K auto-keep
                            |||||__ C event count
                            ||||___ R error rate
                            |||____ S speed/performance
                            ||_____ O updated online
                            |______ P prefailure warning`

	props, _ := parseAttributes(body)
	if len(props) != 1 {
		t.Fatalf("got %d properties, want 1 (legend lines must not parse): %+v", len(props), props)
	}
}

func TestParseAttributes_BriefFormat(t *testing.T) {
	body := `ID# ATTRIBUTE_NAME          FLAGS    VALUE WORST THRESH FAIL RAW_VALUE
  5 Retired_Block_Count     PO----   099   099   010    -    3`

	props, diags := parseAttributes(body)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if len(props) != 1 {
		t.Fatalf("got %d properties, want 1", len(props))
	}
	entry := props[0].Value.Attribute
	if entry.AttrType != AttrTypePrefail {
		t.Errorf("AttrType = %v, want Prefail (P flag present)", entry.AttrType)
	}
	if entry.UpdateType != UpdateTypeAlways {
		t.Errorf("UpdateType = %v, want Always (O flag present)", entry.UpdateType)
	}
	if entry.WhenFailed != WhenFailedNone {
		t.Errorf("WhenFailed = %v, want None", entry.WhenFailed)
	}
	if entry.RawValueInt != 3 {
		t.Errorf("RawValueInt = %d, want 3", entry.RawValueInt)
	}
}

func TestDetectAttributeFormat(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   attributeFormat
	}{
		{"old", "ID# ATTRIBUTE_NAME FLAG VALUE WORST THRESH TYPE UPDATED WHEN_FAILED RAW_VALUE", attrFormatOld},
		{"old_no_updated", "ID# ATTRIBUTE_NAME FLAG VALUE WORST THRESH TYPE WHEN_FAILED RAW_VALUE", attrFormatOldNoUpdated},
		{"brief", "ID# ATTRIBUTE_NAME FLAGS VALUE WORST THRESH FAIL RAW_VALUE", attrFormatBrief},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectAttributeFormat(tt.header); got != tt.want {
				t.Errorf("detectAttributeFormat(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}
