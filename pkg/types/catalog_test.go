package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()

	t.Run("every declared kind resolves", func(t *testing.T) {
		for _, kind := range Kinds {
			cfg, err := r.Resolve(kind)
			require.NoError(t, err, "kind %s", kind)
			assert.Equal(t, string(kind), cfg.Table)
			assert.NotEmpty(t, cfg.IDColumn)
			assert.Equal(t, "name", cfg.NameColumn)
		}
	})

	t.Run("unknown kind fails with ErrUnknownKind", func(t *testing.T) {
		_, err := r.Resolve(Kind("warrants"))
		assert.ErrorIs(t, err, ErrUnknownKind)
		assert.True(t, errors.Is(err, ErrUnknownKind))
	})

	t.Run("table shapes match the schema", func(t *testing.T) {
		tests := []struct {
			kind           Kind
			idColumn       string
			hasDescription bool
			extras         []ExtraColumn
		}{
			{KindOffenseTypes, "offense_type_id", true, nil},
			{KindCaseStages, "case_stage_id", true, nil},
			{KindMeasureTypes, "measure_type_id", true, []ExtraColumn{{Name: "custodial", Type: ColumnBool}}},
			{KindInstitutions, "institution_id", true, []ExtraColumn{{Name: "residential", Type: ColumnBool}}},
			{KindHearingTypes, "hearing_type_id", true, []ExtraColumn{{Name: "lead_days", Type: ColumnInt}}},
			{KindDocumentTypes, "document_type_id", false, []ExtraColumn{{Name: "confidential", Type: ColumnBool}}},
		}
		for _, tt := range tests {
			cfg, err := r.Resolve(tt.kind)
			require.NoError(t, err, "kind %s", tt.kind)
			assert.Equal(t, tt.idColumn, cfg.IDColumn)
			assert.Equal(t, tt.hasDescription, cfg.HasDescription)
			assert.Equal(t, tt.extras, cfg.Extras)
		}
	})
}

func TestTableConfigExtra(t *testing.T) {
	r := NewRegistry()
	cfg, err := r.Resolve(KindHearingTypes)
	require.NoError(t, err)

	col, ok := cfg.Extra("lead_days")
	require.True(t, ok)
	assert.Equal(t, ColumnInt, col.Type)

	_, ok = cfg.Extra("custodial")
	assert.False(t, ok)
}

func TestCatalogUpdateEmpty(t *testing.T) {
	name := "arraignment"
	desc := "first appearance"

	assert.True(t, CatalogUpdate{}.Empty())
	assert.False(t, CatalogUpdate{Name: &name}.Empty())
	assert.False(t, CatalogUpdate{Description: &desc}.Empty())
	assert.False(t, CatalogUpdate{Extras: map[string]any{"lead_days": 7}}.Empty())
}
