// Unit tests for backend attach/detach lifecycle and first-run seeding.
package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-justice/docket/pkg/types"
)

// newTestBackend attaches a backend against a fresh temp directory and
// detaches it when the test finishes.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{DataDir: t.TempDir()}))
	t.Cleanup(func() { _ = b.Detach() })
	return b
}

func TestAttachDetach(t *testing.T) {
	ctx := context.Background()

	t.Run("operations before attach fail with ErrStoreDetached", func(t *testing.T) {
		b := NewBackend()
		_, err := b.Catalogs().List(ctx, types.KindCaseStages, types.ListOptions{})
		assert.ErrorIs(t, err, types.ErrStoreDetached)
		_, err = b.CaseVictims().Exists(ctx, 1, 1)
		assert.ErrorIs(t, err, types.ErrStoreDetached)
	})

	t.Run("attach twice fails with ErrAlreadyAttached", func(t *testing.T) {
		b := newTestBackend(t)
		assert.ErrorIs(t, b.Attach(types.Config{DataDir: t.TempDir()}), types.ErrAlreadyAttached)
	})

	t.Run("attach rejects unknown log level", func(t *testing.T) {
		b := NewBackend()
		err := b.Attach(types.Config{DataDir: t.TempDir(), LogLevel: "loud"})
		assert.ErrorIs(t, err, types.ErrLogLevelUnknown)
	})

	t.Run("detach is idempotent", func(t *testing.T) {
		b := NewBackend()
		require.NoError(t, b.Attach(types.Config{DataDir: t.TempDir()}))
		require.NoError(t, b.Detach())
		require.NoError(t, b.Detach())
	})

	t.Run("operations after detach fail with ErrStoreDetached", func(t *testing.T) {
		b := NewBackend()
		require.NoError(t, b.Attach(types.Config{DataDir: t.TempDir()}))
		require.NoError(t, b.Detach())
		_, err := b.Cases().List(ctx)
		assert.ErrorIs(t, err, types.ErrStoreDetached)
	})
}

func TestSeedBuiltinCatalogs(t *testing.T) {
	ctx := context.Background()

	t.Run("every kind is seeded on first attach", func(t *testing.T) {
		b := newTestBackend(t)
		for _, kind := range types.Kinds {
			n, err := b.Catalogs().Count(ctx, kind, "")
			require.NoError(t, err)
			assert.Positive(t, n, "kind %s should have seed rows", kind)
		}
	})

	t.Run("seeding is idempotent across re-attach", func(t *testing.T) {
		dir := t.TempDir()

		b := NewBackend()
		require.NoError(t, b.Attach(types.Config{DataDir: dir}))
		before, err := b.Catalogs().Count(ctx, types.KindCaseStages, "")
		require.NoError(t, err)
		require.NoError(t, b.Detach())

		b2 := NewBackend()
		require.NoError(t, b2.Attach(types.Config{DataDir: dir}))
		defer b2.Detach()
		after, err := b2.Catalogs().Count(ctx, types.KindCaseStages, "")
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("data persists across re-attach", func(t *testing.T) {
		dir := t.TempDir()

		b := NewBackend()
		require.NoError(t, b.Attach(types.Config{DataDir: dir}))
		created, err := b.Catalogs().Create(context.Background(), types.KindOffenseTypes,
			types.CatalogCreate{Name: "persistent offense"})
		require.NoError(t, err)
		require.NoError(t, b.Detach())

		b2 := NewBackend()
		require.NoError(t, b2.Attach(types.Config{DataDir: dir}))
		defer b2.Detach()
		got, err := b2.Catalogs().Get(ctx, types.KindOffenseTypes, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "persistent offense", got.Name)
	})
}
