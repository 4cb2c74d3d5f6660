package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/open-justice/docket/pkg/types"
)

// Cases is the accessor for the cases table. Structural validation of the
// payload happens upstream; this layer enforces only its own invariants
// (case-number uniqueness, catalog references).
type Cases struct {
	backend *Backend
}

// newCaseNumber generates a time-ordered external reference for a new case.
func newCaseNumber() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Create inserts a case and returns it re-read by the generated id.
// An empty CaseNumber is filled with a generated one; a duplicate fails
// with ErrConflict. A catalog reference to a missing row surfaces the
// store's foreign-key signal as ErrConflict.
func (cs *Cases) Create(ctx context.Context, c *types.Case) (*types.Case, error) {
	db, err := cs.backend.handle()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	number := c.CaseNumber
	if number == "" {
		number = newCaseNumber()
	}
	openedAt := c.OpenedAt
	if openedAt.IsZero() {
		openedAt = now
	}

	var measure, institution sql.NullInt64
	if c.MeasureTypeID != nil {
		measure = sql.NullInt64{Int64: *c.MeasureTypeID, Valid: true}
	}
	if c.InstitutionID != nil {
		institution = sql.NullInt64{Int64: *c.InstitutionID, Valid: true}
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO cases (case_number, defendant, offense_id, stage_id, measure_type_id, institution_id, opened_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		number, c.Defendant, c.OffenseID, c.StageID, measure, institution,
		openedAt.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: case number %q already exists", types.ErrConflict, number)
		}
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: case references a missing catalog row", types.ErrConflict)
		}
		return nil, fmt.Errorf("inserting case: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading case insert id: %w", err)
	}
	cs.backend.log.Debug("case created", "case_id", id, "case_number", number)

	return cs.Get(ctx, id)
}

// Get retrieves a case by id. Returns ErrNotFound when no row matches.
func (cs *Cases) Get(ctx context.Context, id int64) (*types.Case, error) {
	db, err := cs.backend.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT case_id, case_number, defendant, offense_id, stage_id,
		       measure_type_id, institution_id, opened_at, created_at
		FROM cases WHERE case_id = ?`, id)

	c, err := scanCase(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: case %d", types.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all cases, newest first.
func (cs *Cases) List(ctx context.Context) ([]types.Case, error) {
	db, err := cs.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT case_id, case_number, defendant, offense_id, stage_id,
		       measure_type_id, institution_id, opened_at, created_at
		FROM cases ORDER BY case_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing cases: %w", err)
	}
	defer rows.Close()

	results := []types.Case{}
	for rows.Next() {
		c, err := scanCase(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, *c)
	}
	return results, rows.Err()
}

// scanCase scans one cases row in SELECT order.
func scanCase(scan func(dest ...any) error) (*types.Case, error) {
	var c types.Case
	var measure, institution sql.NullInt64
	var openedAt, createdAt string

	err := scan(&c.CaseID, &c.CaseNumber, &c.Defendant, &c.OffenseID, &c.StageID,
		&measure, &institution, &openedAt, &createdAt)
	if err != nil {
		return nil, err
	}

	if measure.Valid {
		c.MeasureTypeID = &measure.Int64
	}
	if institution.Valid {
		c.InstitutionID = &institution.Int64
	}
	c.OpenedAt, err = time.Parse(time.RFC3339, openedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing case opened_at: %w", err)
	}
	c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing case created_at: %w", err)
	}
	return &c, nil
}
