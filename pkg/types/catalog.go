// Catalog kinds and their schema descriptors. The registry is the single
// extension point for adding a new catalog: every table and column name used
// in generated SQL comes from here and never from caller input.
package types

import "fmt"

// Kind identifies which catalog's schema a generic CRUD call targets.
type Kind string

// The closed set of catalog kinds.
const (
	KindOffenseTypes  Kind = "offense_types"
	KindCaseStages    Kind = "case_stages"
	KindMeasureTypes  Kind = "measure_types"
	KindInstitutions  Kind = "institutions"
	KindHearingTypes  Kind = "hearing_types"
	KindDocumentTypes Kind = "document_types"
)

// Kinds lists all registered catalog kinds for enumeration.
var Kinds = []Kind{
	KindOffenseTypes,
	KindCaseStages,
	KindMeasureTypes,
	KindInstitutions,
	KindHearingTypes,
	KindDocumentTypes,
}

// ColumnType is the value type of an extra catalog column.
type ColumnType int

const (
	ColumnBool ColumnType = iota
	ColumnInt
)

// ExtraColumn describes an optional typed column specific to one kind.
type ExtraColumn struct {
	Name string
	Type ColumnType
}

// TableConfig is the physical schema descriptor for one catalog kind.
type TableConfig struct {
	// Table is the physical table identifier.
	Table string

	// IDColumn is the integer auto-generated primary-key column.
	IDColumn string

	// NameColumn holds the display name; unique per table, used for search
	// and duplicate detection.
	NameColumn string

	// HasDescription is true when the table carries an optional free-text
	// description column.
	HasDescription bool

	// Extras are additional optional typed columns, in declaration order.
	Extras []ExtraColumn
}

// Extra returns the extra column with the given name, if any.
func (c TableConfig) Extra(name string) (ExtraColumn, bool) {
	for _, col := range c.Extras {
		if col.Name == name {
			return col, true
		}
	}
	return ExtraColumn{}, false
}

// Registry maps catalog kinds to their schema descriptors. It is built once
// at process start and never mutated afterwards.
type Registry struct {
	configs map[Kind]TableConfig
}

// NewRegistry builds the sealed kind registry.
func NewRegistry() *Registry {
	return &Registry{configs: map[Kind]TableConfig{
		KindOffenseTypes: {
			Table:          "offense_types",
			IDColumn:       "offense_type_id",
			NameColumn:     "name",
			HasDescription: true,
		},
		KindCaseStages: {
			Table:          "case_stages",
			IDColumn:       "case_stage_id",
			NameColumn:     "name",
			HasDescription: true,
		},
		KindMeasureTypes: {
			Table:          "measure_types",
			IDColumn:       "measure_type_id",
			NameColumn:     "name",
			HasDescription: true,
			Extras:         []ExtraColumn{{Name: "custodial", Type: ColumnBool}},
		},
		KindInstitutions: {
			Table:          "institutions",
			IDColumn:       "institution_id",
			NameColumn:     "name",
			HasDescription: true,
			Extras:         []ExtraColumn{{Name: "residential", Type: ColumnBool}},
		},
		KindHearingTypes: {
			Table:          "hearing_types",
			IDColumn:       "hearing_type_id",
			NameColumn:     "name",
			HasDescription: true,
			Extras:         []ExtraColumn{{Name: "lead_days", Type: ColumnInt}},
		},
		KindDocumentTypes: {
			Table:      "document_types",
			IDColumn:   "document_type_id",
			NameColumn: "name",
			Extras:     []ExtraColumn{{Name: "confidential", Type: ColumnBool}},
		},
	}}
}

// Resolve returns the TableConfig for kind. An unrecognized kind fails with
// ErrUnknownKind.
func (r *Registry) Resolve(kind Kind) (TableConfig, error) {
	cfg, ok := r.configs[kind]
	if !ok {
		return TableConfig{}, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
	return cfg, nil
}

// CatalogEntry is one catalog row. Extras holds the kind-specific columns,
// keyed by column name, with bool or int64 values.
type CatalogEntry struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Extras      map[string]any `json:"extras,omitempty"`
}

// CatalogCreate is the payload for creating a catalog row. Name is required
// by the caller contract. Description is included only when the kind has a
// description column and the pointer is non-nil. Extras keys must name
// columns declared for the kind; omitted columns take the store default.
type CatalogCreate struct {
	Name        string
	Description *string
	Extras      map[string]any
}

// CatalogUpdate is the payload for a partial update. Nil fields and absent
// Extras keys are left untouched. An update carrying no field at all is a
// caller error.
type CatalogUpdate struct {
	Name        *string
	Description *string
	Extras      map[string]any
}

// Empty reports whether the update carries no field.
func (u CatalogUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && len(u.Extras) == 0
}

// ListOptions filters and pages a catalog listing. Search performs a
// case-insensitive substring match on the name column. Limit <= 0 returns
// the entire result set.
type ListOptions struct {
	Search string
	Limit  int
	Offset int
}
