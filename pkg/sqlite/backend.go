// Package sqlite provides the public API for the SQLite docket backend.
// It exposes the factory function for creating backends while keeping the
// implementation internal.
package sqlite

import (
	"github.com/open-justice/docket/internal/sqlite"
)

// Backend is the SQLite storage backend.
type Backend = sqlite.Backend

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{DataDir: ".docket-db"})
//	defer backend.Detach()
func NewBackend() *Backend {
	return sqlite.NewBackend()
}
