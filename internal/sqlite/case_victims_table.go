package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/open-justice/docket/pkg/types"
)

// CaseVictims manages the case ↔ victim link table. Both sides are
// validated before any mutation; the pair-uniqueness race between the
// duplicate check and the insert is resolved by the table's composite
// primary key and translated to ErrConflict.
type CaseVictims struct {
	backend *Backend
}

// Associate links a case to a victim. Checks run in a fixed order for
// diagnostics: case existence, victim existence, then duplicate pair.
func (cv *CaseVictims) Associate(ctx context.Context, caseID, victimID int64) (*types.Association, error) {
	db, err := cv.backend.handle()
	if err != nil {
		return nil, err
	}
	if err := caseExists(ctx, db, caseID); err != nil {
		return nil, err
	}
	return cv.associateVictim(ctx, db, caseID, victimID)
}

// associateVictim runs the victim-side checks and the insert. Associate and
// AssociateMany share it so the batch validates the case only once.
func (cv *CaseVictims) associateVictim(ctx context.Context, db *sql.DB, caseID, victimID int64) (*types.Association, error) {
	if err := victimExists(ctx, db, victimID); err != nil {
		return nil, err
	}

	exists, err := pairExists(ctx, db, caseID, victimID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: victim %d is already associated with case %d", types.ErrConflict, victimID, caseID)
	}

	now := time.Now()
	_, err = db.ExecContext(ctx,
		"INSERT INTO case_victims (case_id, victim_id, created_at) VALUES (?, ?, ?)",
		caseID, victimID, now.Format(time.RFC3339))
	if err != nil {
		// A concurrent insert of the same pair loses the race here.
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: victim %d is already associated with case %d", types.ErrConflict, victimID, caseID)
		}
		return nil, fmt.Errorf("inserting association: %w", err)
	}
	cv.backend.log.Debug("association created", "case_id", caseID, "victim_id", victimID)

	return &types.Association{CaseID: caseID, VictimID: victimID, CreatedAt: now}, nil
}

// Disassociate removes the link between a case and a victim. A pair that
// does not exist fails with ErrNotFound: disassociation is deliberately not
// idempotent, so callers can tell "never associated" from a real removal.
func (cv *CaseVictims) Disassociate(ctx context.Context, caseID, victimID int64) (*types.Association, error) {
	db, err := cv.backend.handle()
	if err != nil {
		return nil, err
	}

	var createdAt string
	err = db.QueryRowContext(ctx,
		"SELECT created_at FROM case_victims WHERE case_id = ? AND victim_id = ?",
		caseID, victimID).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: victim %d is not associated with case %d", types.ErrNotFound, victimID, caseID)
	}
	if err != nil {
		return nil, fmt.Errorf("checking association: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		"DELETE FROM case_victims WHERE case_id = ? AND victim_id = ?",
		caseID, victimID); err != nil {
		return nil, fmt.Errorf("deleting association: %w", err)
	}
	cv.backend.log.Debug("association removed", "case_id", caseID, "victim_id", victimID)

	a := &types.Association{CaseID: caseID, VictimID: victimID}
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return a, nil
}

// Exists reports whether the case ↔ victim pair is currently linked.
func (cv *CaseVictims) Exists(ctx context.Context, caseID, victimID int64) (bool, error) {
	db, err := cv.backend.handle()
	if err != nil {
		return false, err
	}
	return pairExists(ctx, db, caseID, victimID)
}

// VictimsByCase returns the full victim rows linked to a case, ordered by
// victim name for display.
func (cv *CaseVictims) VictimsByCase(ctx context.Context, caseID int64) ([]types.Victim, error) {
	db, err := cv.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT v.victim_id, v.full_name, v.notes, v.created_at
		FROM victims v
		JOIN case_victims cv ON cv.victim_id = v.victim_id
		WHERE cv.case_id = ?
		ORDER BY v.full_name COLLATE NOCASE ASC`, caseID)
	if err != nil {
		return nil, fmt.Errorf("listing victims for case %d: %w", caseID, err)
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

// CasesByVictim returns the full case rows linked to a victim. The ordering
// (case id descending, most recent first) is observed behavior, not a
// contract.
func (cv *CaseVictims) CasesByVictim(ctx context.Context, victimID int64) ([]types.Case, error) {
	db, err := cv.backend.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT c.case_id, c.case_number, c.defendant, c.offense_id, c.stage_id,
		       c.measure_type_id, c.institution_id, c.opened_at, c.created_at
		FROM cases c
		JOIN case_victims cv ON cv.case_id = c.case_id
		WHERE cv.victim_id = ?
		ORDER BY c.case_id DESC`, victimID)
	if err != nil {
		return nil, fmt.Errorf("listing cases for victim %d: %w", victimID, err)
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

// AssociateMany links several victims to one case with partial-failure
// semantics: the case is validated once (ErrNotFound fails the whole
// batch), then each victim is attempted independently in input order. One
// bad id never blocks the others; the output has exactly one outcome per
// input id, in input order. Each item is its own transaction — there is no
// all-or-nothing guarantee, and items committed before a context
// cancellation stay committed.
func (cv *CaseVictims) AssociateMany(ctx context.Context, caseID int64, victimIDs []int64) ([]types.AssociationOutcome, error) {
	db, err := cv.backend.handle()
	if err != nil {
		return nil, err
	}
	if err := caseExists(ctx, db, caseID); err != nil {
		return nil, err
	}

	outcomes := make([]types.AssociationOutcome, len(victimIDs))
	for i, victimID := range victimIDs {
		_, err := cv.associateVictim(ctx, db, caseID, victimID)
		outcomes[i] = types.AssociationOutcome{VictimID: victimID, Err: err}
	}
	return outcomes, nil
}

// caseExists fails with ErrNotFound when the case id has no row.
func caseExists(ctx context.Context, db *sql.DB, caseID int64) error {
	var one int
	err := db.QueryRowContext(ctx, "SELECT 1 FROM cases WHERE case_id = ?", caseID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: case %d", types.ErrNotFound, caseID)
	}
	if err != nil {
		return fmt.Errorf("checking case %d: %w", caseID, err)
	}
	return nil
}

// victimExists fails with ErrNotFound when the victim id has no row.
func victimExists(ctx context.Context, db *sql.DB, victimID int64) error {
	var one int
	err := db.QueryRowContext(ctx, "SELECT 1 FROM victims WHERE victim_id = ?", victimID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: victim %d", types.ErrNotFound, victimID)
	}
	if err != nil {
		return fmt.Errorf("checking victim %d: %w", victimID, err)
	}
	return nil
}

func pairExists(ctx context.Context, db *sql.DB, caseID, victimID int64) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx,
		"SELECT 1 FROM case_victims WHERE case_id = ? AND victim_id = ?",
		caseID, victimID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking association: %w", err)
	}
	return true, nil
}
