// Built-in catalog seeding on first attach. Each catalog is seeded only
// when its table is empty, so re-attaching never duplicates rows and
// operator edits survive restarts.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/open-justice/docket/pkg/types"
)

// builtinEntry describes one catalog row to seed.
type builtinEntry struct {
	name        string
	description string
	extras      map[string]any
}

// builtinCatalogs defines the rows seeded on first startup, in registry
// dependency order.
var builtinCatalogs = []struct {
	kind    types.Kind
	entries []builtinEntry
}{
	{
		kind: types.KindOffenseTypes,
		entries: []builtinEntry{
			{name: "theft", description: "Taking property without consent"},
			{name: "assault", description: "Physical aggression against a person"},
			{name: "vandalism", description: "Destruction of property"},
			{name: "drug offense", description: "Possession or distribution of controlled substances"},
		},
	},
	{
		kind: types.KindCaseStages,
		entries: []builtinEntry{
			{name: "intake", description: "Initial referral received"},
			{name: "investigation", description: "Facts under investigation"},
			{name: "adjudication", description: "Before the court"},
			{name: "disposition", description: "Measure being determined"},
			{name: "closed", description: "Case resolved"},
		},
	},
	{
		kind: types.KindMeasureTypes,
		entries: []builtinEntry{
			{name: "community service", description: "Supervised unpaid work", extras: map[string]any{"custodial": false}},
			{name: "probation", description: "Supervised liberty with conditions", extras: map[string]any{"custodial": false}},
			{name: "detention", description: "Placement in a secure facility", extras: map[string]any{"custodial": true}},
		},
	},
	{
		kind: types.KindInstitutions,
		entries: []builtinEntry{
			{name: "youth detention center", description: "Secure residential facility", extras: map[string]any{"residential": true}},
			{name: "community program office", description: "Non-residential supervision office", extras: map[string]any{"residential": false}},
		},
	},
	{
		kind: types.KindHearingTypes,
		entries: []builtinEntry{
			{name: "arraignment", description: "First appearance", extras: map[string]any{"lead_days": 5}},
			{name: "review", description: "Periodic measure review", extras: map[string]any{"lead_days": 10}},
			{name: "disposition", description: "Measure determination", extras: map[string]any{"lead_days": 15}},
		},
	},
	{
		kind: types.KindDocumentTypes,
		entries: []builtinEntry{
			{name: "intake report", extras: map[string]any{"confidential": true}},
			{name: "court order", extras: map[string]any{"confidential": false}},
		},
	},
}

// seedBuiltinCatalogs inserts the built-in rows for every catalog whose
// table is empty.
func seedBuiltinCatalogs(db *sql.DB, registry *types.Registry) error {
	for _, seed := range builtinCatalogs {
		cfg, err := registry.Resolve(seed.kind)
		if err != nil {
			return err
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + cfg.Table).Scan(&count); err != nil {
			return fmt.Errorf("counting %s for seed: %w", cfg.Table, err)
		}
		if count > 0 {
			continue
		}

		for _, e := range seed.entries {
			if err := insertSeed(db, cfg, e); err != nil {
				return fmt.Errorf("seeding %s %q: %w", cfg.Table, e.name, err)
			}
		}
	}
	return nil
}

// insertSeed inserts one built-in row using the same registry-sourced
// column assembly as the catalog engine.
func insertSeed(db *sql.DB, cfg types.TableConfig, e builtinEntry) error {
	cols := []string{cfg.NameColumn}
	args := []any{e.name}
	if cfg.HasDescription && e.description != "" {
		cols = append(cols, "description")
		args = append(args, e.description)
	}
	extraCols, extraArgs, err := bindExtras(cfg, e.extras)
	if err != nil {
		return err
	}
	cols = append(cols, extraCols...)
	args = append(args, extraArgs...)

	query := "INSERT INTO " + cfg.Table + " (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders(len(cols)) + ")"
	_, err = db.Exec(query, args...)
	return err
}
