package smart

import (
	"strings"
	"sync"
)

// AttributeDescription is one entry in the attribute description database:
// a known mapping from a vendor-reported attribute id/name to a generic
// name, a human-readable name, and its explanatory text.
type AttributeDescription struct {
	ID           uint8
	DiskClass    DiskClass
	SmartctlName string
	GenericName  string
	ReadableName string
	Description  string
}

// StatisticDescription is the Devstat-section analogue of
// AttributeDescription, keyed by the reported statistic name rather than
// a numeric id.
type StatisticDescription struct {
	SmartctlName string
	GenericName  string
	ReadableName string
	Description  string
}

// Database is the C4 attribute/statistic description lookup table. Entries
// are appended in insertion order and never replaced: a later addAttribute
// call for an id/disk-class pair that already has an entry adds a second,
// distinct entry to the bucket rather than overwriting the first (see
// DESIGN.md, Open Questions resolved, #1).
type Database struct {
	attributes map[uint8][]AttributeDescription
	statistics map[string]StatisticDescription
}

func newDatabase() *Database {
	db := &Database{
		attributes: make(map[uint8][]AttributeDescription),
		statistics: make(map[string]StatisticDescription),
	}
	seedAttributeDatabase(db)
	seedStatisticDatabase(db)
	return db
}

var defaultDatabase = sync.OnceValue(newDatabase)

// DefaultDatabase returns the package's built-in attribute/statistic
// description database, built once and shared across all Parse calls.
func DefaultDatabase() *Database { return defaultDatabase() }

// addAttribute appends a new description to id's bucket.
func (db *Database) addAttribute(id uint8, class DiskClass, smartctlName, genericName, readableName, description string) {
	db.attributes[id] = append(db.attributes[id], AttributeDescription{
		ID:           id,
		DiskClass:    class,
		SmartctlName: smartctlName,
		GenericName:  genericName,
		ReadableName: readableName,
		Description:  description,
	})
}

// addRef copies id's first (default) entry under a different disk class
// and smartctl-reported name, the pattern SSD aliases of an HDD attribute
// use instead of repeating the whole description.
func (db *Database) addRef(id uint8, class DiskClass, smartctlName string) {
	bucket := db.attributes[id]
	if len(bucket) == 0 {
		return
	}
	alias := bucket[0]
	alias.DiskClass = class
	alias.SmartctlName = smartctlName
	db.attributes[id] = append(db.attributes[id], alias)
}

func (db *Database) addStatistic(smartctlName, genericName, readableName, description string) {
	db.statistics[strings.ToLower(smartctlName)] = StatisticDescription{
		SmartctlName: smartctlName,
		GenericName:  genericName,
		ReadableName: readableName,
		Description:  description,
	}
}

// classMatches reports whether an entry recorded under entryClass applies
// to a lookup made for requestClass: either side being Any satisfies both.
func classMatches(requestClass, entryClass DiskClass) bool {
	return requestClass == DiskClassAny || entryClass == DiskClassAny || requestClass == entryClass
}

// FindAttribute implements §4.4's lookup algorithm: filter id's bucket to
// disk-class-compatible entries, then prefer a case-insensitive
// smartctl-name match; fall back to the first class-matched entry (the id
// default) when no name matches.
func (db *Database) FindAttribute(id uint8, reportedName string, diskClass DiskClass) (AttributeDescription, bool) {
	bucket := db.attributes[id]
	if len(bucket) == 0 {
		return AttributeDescription{}, false
	}

	filtered := make([]AttributeDescription, 0, len(bucket))
	for _, e := range bucket {
		if classMatches(diskClass, e.DiskClass) {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 0 {
		return AttributeDescription{}, false
	}

	for _, e := range filtered {
		if e.SmartctlName == "" {
			continue
		}
		if strings.EqualFold(e.SmartctlName, reportedName) {
			return e, true
		}
	}
	return filtered[0], true
}

// FindStatistic looks up a Devstat-section description by its
// smartctl-reported name, case-insensitively.
func (db *Database) FindStatistic(reportedName string) (StatisticDescription, bool) {
	d, ok := db.statistics[strings.ToLower(strings.TrimSpace(reportedName))]
	return d, ok
}
