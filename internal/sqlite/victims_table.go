package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/open-justice/docket/pkg/types"
)

// Victims is the accessor for the victims table.
type Victims struct {
	backend *Backend
}

// Create inserts a victim and returns it re-read by the generated id.
func (vs *Victims) Create(ctx context.Context, v *types.Victim) (*types.Victim, error) {
	db, err := vs.backend.handle()
	if err != nil {
		return nil, err
	}

	var notes sql.NullString
	if v.Notes != nil {
		notes = sql.NullString{String: *v.Notes, Valid: true}
	}

	now := time.Now()
	res, err := db.ExecContext(ctx,
		"INSERT INTO victims (full_name, notes, created_at) VALUES (?, ?, ?)",
		v.FullName, notes, now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("inserting victim: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading victim insert id: %w", err)
	}
	vs.backend.log.Debug("victim created", "victim_id", id)

	return vs.Get(ctx, id)
}

// Get retrieves a victim by id. Returns ErrNotFound when no row matches.
func (vs *Victims) Get(ctx context.Context, id int64) (*types.Victim, error) {
	db, err := vs.backend.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx,
		"SELECT victim_id, full_name, notes, created_at FROM victims WHERE victim_id = ?", id)

	v, err := scanVictim(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: victim %d", types.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// List returns all victims ordered by name.
func (vs *Victims) List(ctx context.Context) ([]types.Victim, error) {
	db, err := vs.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT victim_id, full_name, notes, created_at FROM victims ORDER BY full_name COLLATE NOCASE ASC")
	if err != nil {
		return nil, fmt.Errorf("listing victims: %w", err)
	}
	defer rows.Close()

	results := []types.Victim{}
	for rows.Next() {
		v, err := scanVictim(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, *v)
	}
	return results, rows.Err()
}

// scanVictim scans one victims row in SELECT order.
func scanVictim(scan func(dest ...any) error) (*types.Victim, error) {
	var v types.Victim
	var notes sql.NullString
	var createdAt string

	if err := scan(&v.VictimID, &v.FullName, &notes, &createdAt); err != nil {
		return nil, err
	}
	if notes.Valid {
		v.Notes = &notes.String
	}
	var err error
	v.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing victim created_at: %w", err)
	}
	return &v, nil
}
