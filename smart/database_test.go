package smart

import "testing"

func TestDatabase_FindAttribute_DiskClassOverride(t *testing.T) {
	db := DefaultDatabase()

	def, ok := db.FindAttribute(5, "Reallocated_Sector_Ct", DiskClassHDD)
	if !ok {
		t.Fatalf("expected id=5 HDD lookup to hit")
	}
	if def.GenericName != "attr_reallocated_sector_count" {
		t.Errorf("GenericName = %q, want attr_reallocated_sector_count", def.GenericName)
	}

	ssd, ok := db.FindAttribute(5, "Retired_Block_Count", DiskClassSSD)
	if !ok {
		t.Fatalf("expected id=5 SSD lookup to hit")
	}
	if ssd.GenericName != "attr_ssd_life_left" {
		t.Errorf("GenericName = %q, want attr_ssd_life_left", ssd.GenericName)
	}
	if ssd.ReadableName != "Retired Block Rate" {
		t.Errorf("ReadableName = %q, want Retired Block Rate", ssd.ReadableName)
	}
}

func TestDatabase_FindAttribute_NameMissFallsBackToIDDefault(t *testing.T) {
	db := DefaultDatabase()

	got, ok := db.FindAttribute(194, "Temperature_Celsius_Vendor_Spelling", DiskClassAny)
	if !ok {
		t.Fatalf("expected id=194 lookup to hit via fallback")
	}
	if got.GenericName != "attr_temperature_celsius" {
		t.Errorf("fallback GenericName = %q, want attr_temperature_celsius (first entry in bucket)", got.GenericName)
	}
}

func TestDatabase_FindAttribute_Unknown(t *testing.T) {
	db := DefaultDatabase()
	if _, ok := db.FindAttribute(253, "Whatever", DiskClassAny); ok {
		t.Errorf("expected id=253 to miss, it has no seeded entry")
	}
}

// TestDatabase_HostWritesGiBQuirk locks in the documented id=198 dual
// meaning: an HDD-style Offline_Uncorrectable default plus the SSD
// Host_Writes_GiB override under the same id (DESIGN.md, Open Questions
// resolved, #3).
func TestDatabase_HostWritesGiBQuirk(t *testing.T) {
	db := DefaultDatabase()

	hdd, ok := db.FindAttribute(198, "Offline_Uncorrectable", DiskClassHDD)
	if !ok || hdd.GenericName != "attr_offline_uncorrectable" {
		t.Fatalf("id=198 HDD lookup = %+v, ok=%v", hdd, ok)
	}

	ssd, ok := db.FindAttribute(198, "Host_Writes_GiB", DiskClassSSD)
	if !ok || ssd.GenericName != "attr_host_writes_gib" {
		t.Fatalf("id=198 SSD lookup = %+v, ok=%v", ssd, ok)
	}
}

func TestDatabase_FindStatistic(t *testing.T) {
	db := DefaultDatabase()
	got, ok := db.FindStatistic("current temperature")
	if !ok {
		t.Fatalf("expected case-insensitive match for Current Temperature")
	}
	if got.GenericName != "stat_current_temperature" {
		t.Errorf("GenericName = %q, want stat_current_temperature", got.GenericName)
	}

	if _, ok := db.FindStatistic("Not A Real Statistic"); ok {
		t.Errorf("expected miss for unseeded statistic name")
	}
}
