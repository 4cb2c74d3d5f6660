// Unit tests for the fixed-schema case and victim accessors.
package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-justice/docket/pkg/types"
)

func TestCaseCreateAndGet(t *testing.T) {
	ctx := context.Background()

	t.Run("create fills the case number and timestamps", func(t *testing.T) {
		b := newTestBackend(t)
		c := mustCreateCase(t, b, "C. Poe")

		assert.NotZero(t, c.CaseID)
		assert.NotEmpty(t, c.CaseNumber)
		assert.False(t, c.OpenedAt.IsZero())
		assert.False(t, c.CreatedAt.IsZero())

		got, err := b.Cases().Get(ctx, c.CaseID)
		require.NoError(t, err)
		assert.Equal(t, c, got)
	})

	t.Run("an explicit case number is kept and must be unique", func(t *testing.T) {
		b := newTestBackend(t)
		offense := seededCatalogID(t, b, types.KindOffenseTypes, "theft")
		stage := seededCatalogID(t, b, types.KindCaseStages, "intake")

		c, err := b.Cases().Create(ctx, &types.Case{
			CaseNumber: "JJ-2026-0001",
			Defendant:  "C. Poe",
			OffenseID:  offense,
			StageID:    stage,
		})
		require.NoError(t, err)
		assert.Equal(t, "JJ-2026-0001", c.CaseNumber)

		_, err = b.Cases().Create(ctx, &types.Case{
			CaseNumber: "JJ-2026-0001",
			Defendant:  "D. Moe",
			OffenseID:  offense,
			StageID:    stage,
		})
		assert.ErrorIs(t, err, types.ErrConflict)
	})

	t.Run("optional catalog references roundtrip", func(t *testing.T) {
		b := newTestBackend(t)
		measure := seededCatalogID(t, b, types.KindMeasureTypes, "probation")

		c, err := b.Cases().Create(ctx, &types.Case{
			Defendant:     "C. Poe",
			OffenseID:     seededCatalogID(t, b, types.KindOffenseTypes, "theft"),
			StageID:       seededCatalogID(t, b, types.KindCaseStages, "intake"),
			MeasureTypeID: &measure,
		})
		require.NoError(t, err)
		require.NotNil(t, c.MeasureTypeID)
		assert.Equal(t, measure, *c.MeasureTypeID)
		assert.Nil(t, c.InstitutionID)
	})

	t.Run("a missing catalog reference fails with ErrConflict", func(t *testing.T) {
		b := newTestBackend(t)
		_, err := b.Cases().Create(ctx, &types.Case{
			Defendant: "C. Poe",
			OffenseID: 99999,
			StageID:   seededCatalogID(t, b, types.KindCaseStages, "intake"),
		})
		assert.ErrorIs(t, err, types.ErrConflict)
	})

	t.Run("get missing id fails with ErrNotFound", func(t *testing.T) {
		b := newTestBackend(t)
		_, err := b.Cases().Get(ctx, 99999)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("list returns newest first", func(t *testing.T) {
		b := newTestBackend(t)
		first := mustCreateCase(t, b, "First")
		second := mustCreateCase(t, b, "Second")

		cases, err := b.Cases().List(ctx)
		require.NoError(t, err)
		require.Len(t, cases, 2)
		assert.Equal(t, second.CaseID, cases[0].CaseID)
		assert.Equal(t, first.CaseID, cases[1].CaseID)
	})
}

func TestVictimCreateAndGet(t *testing.T) {
	ctx := context.Background()

	t.Run("create then get roundtrips", func(t *testing.T) {
		b := newTestBackend(t)
		notes := "reached via guardian"
		v, err := b.Victims().Create(ctx, &types.Victim{FullName: "Nina Vega", Notes: &notes})
		require.NoError(t, err)
		assert.NotZero(t, v.VictimID)

		got, err := b.Victims().Get(ctx, v.VictimID)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		require.NotNil(t, got.Notes)
		assert.Equal(t, notes, *got.Notes)
	})

	t.Run("get missing id fails with ErrNotFound", func(t *testing.T) {
		b := newTestBackend(t)
		_, err := b.Victims().Get(ctx, 99999)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("list is ordered by name", func(t *testing.T) {
		b := newTestBackend(t)
		mustCreateVictim(t, b, "Zoe Quinn")
		mustCreateVictim(t, b, "Ana Ibarra")

		victims, err := b.Victims().List(ctx)
		require.NoError(t, err)
		require.Len(t, victims, 2)
		assert.Equal(t, "Ana Ibarra", victims[0].FullName)
		assert.Equal(t, "Zoe Quinn", victims[1].FullName)
	})
}
