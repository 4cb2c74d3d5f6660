package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/open-justice/docket/pkg/types"
)

// dbFileName is the SQLite database file created under Config.DataDir.
const dbFileName = "docket.db"

// Backend owns the SQLite connection and hands out table accessors. The
// mutex guards only attach/detach lifecycle state; data operations take no
// in-process locks and rely on the store's unique and foreign-key
// constraints to resolve concurrent check-then-act races.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	log      *slog.Logger
	registry *types.Registry

	catalogs    *Catalogs
	cases       *Cases
	victims     *Victims
	caseVictims *CaseVictims
}

// NewBackend creates an unattached backend; call Attach with a Config to
// initialize.
func NewBackend() *Backend {
	b := &Backend{
		log:      newLogger(""),
		registry: types.NewRegistry(),
	}
	b.catalogs = &Catalogs{backend: b, registry: b.registry}
	b.cases = &Cases{backend: b}
	b.victims = &Victims{backend: b}
	b.caseVictims = &CaseVictims{backend: b}
	return b
}

// Attach initializes the backend: creates DataDir when missing, opens the
// database with foreign-key enforcement enabled, applies the schema, and
// seeds the built-in catalog rows on first run.
// Returns ErrAlreadyAttached when already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}
	b.log = newLogger(config.LogLevel)

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// The pragma must ride on the DSN so every pooled connection enforces
	// foreign keys.
	dsn := "file:" + filepath.Join(dataDir, dbFileName) + "?_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if _, err := db.Exec(Schema()); err != nil {
		db.Close()
		return fmt.Errorf("apply schema: %w", err)
	}

	if err := seedBuiltinCatalogs(db, b.registry); err != nil {
		db.Close()
		return fmt.Errorf("seed catalogs: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true
	b.log.Debug("backend attached", "data_dir", dataDir)

	return nil
}

// Detach closes the database. After Detach all operations return
// ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	return nil
}

// DBPath returns the path of the database file for the attached backend.
func (b *Backend) DBPath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	dataDir := b.config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	return filepath.Join(dataDir, dbFileName)
}

// Catalogs returns the generic catalog CRUD accessor.
func (b *Backend) Catalogs() *Catalogs { return b.catalogs }

// Cases returns the case-file accessor.
func (b *Backend) Cases() *Cases { return b.cases }

// Victims returns the victim accessor.
func (b *Backend) Victims() *Victims { return b.victims }

// CaseVictims returns the case ↔ victim association accessor.
func (b *Backend) CaseVictims() *CaseVictims { return b.caseVictims }

// handle returns the live database handle, or ErrStoreDetached.
func (b *Backend) handle() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.db, nil
}
