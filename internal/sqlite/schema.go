// Package sqlite implements the SQLite storage backend for docket.
package sqlite

import "strings"

// Schema DDL. Catalog tables share the id/name/description shape; their
// differences are purely columnar and live in the pkg/types registry. Extra
// columns are NOT NULL with defaults so re-reads always materialize them.
const (
	createOffenseTypes = `CREATE TABLE IF NOT EXISTS offense_types (
    offense_type_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    description TEXT
);`

	createCaseStages = `CREATE TABLE IF NOT EXISTS case_stages (
    case_stage_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    description TEXT
);`

	createMeasureTypes = `CREATE TABLE IF NOT EXISTS measure_types (
    measure_type_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    description TEXT,
    custodial INTEGER NOT NULL DEFAULT 0
);`

	createInstitutions = `CREATE TABLE IF NOT EXISTS institutions (
    institution_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    description TEXT,
    residential INTEGER NOT NULL DEFAULT 0
);`

	createHearingTypes = `CREATE TABLE IF NOT EXISTS hearing_types (
    hearing_type_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    description TEXT,
    lead_days INTEGER NOT NULL DEFAULT 0
);`

	createDocumentTypes = `CREATE TABLE IF NOT EXISTS document_types (
    document_type_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    confidential INTEGER NOT NULL DEFAULT 0
);`

	createCases = `CREATE TABLE IF NOT EXISTS cases (
    case_id INTEGER PRIMARY KEY,
    case_number TEXT NOT NULL UNIQUE,
    defendant TEXT NOT NULL,
    offense_id INTEGER NOT NULL REFERENCES offense_types(offense_type_id) ON DELETE RESTRICT,
    stage_id INTEGER NOT NULL REFERENCES case_stages(case_stage_id) ON DELETE RESTRICT,
    measure_type_id INTEGER REFERENCES measure_types(measure_type_id) ON DELETE RESTRICT,
    institution_id INTEGER REFERENCES institutions(institution_id) ON DELETE RESTRICT,
    opened_at TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createVictims = `CREATE TABLE IF NOT EXISTS victims (
    victim_id INTEGER PRIMARY KEY,
    full_name TEXT NOT NULL,
    notes TEXT,
    created_at TEXT NOT NULL
);`

	// Composite primary key: a (case, victim) pair exists at most once.
	createCaseVictims = `CREATE TABLE IF NOT EXISTS case_victims (
    case_id INTEGER NOT NULL REFERENCES cases(case_id) ON DELETE RESTRICT,
    victim_id INTEGER NOT NULL REFERENCES victims(victim_id) ON DELETE RESTRICT,
    created_at TEXT NOT NULL,
    PRIMARY KEY (case_id, victim_id)
);`
)

// schemaStatements lists all DDL in dependency order, catalogs first.
var schemaStatements = []string{
	createOffenseTypes,
	createCaseStages,
	createMeasureTypes,
	createInstitutions,
	createHearingTypes,
	createDocumentTypes,
	createCases,
	createVictims,
	createCaseVictims,
}

// Schema returns the full DDL script.
func Schema() string {
	return strings.Join(schemaStatements, "\n")
}
