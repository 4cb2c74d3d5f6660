package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/open-justice/docket/pkg/types"
)

// Catalogs is the generic CRUD engine for all catalog kinds. The kinds
// differ only in columns, never in behavior, so a single code path
// parameterized by the registry's TableConfig serves every table. All SQL is
// assembled here and nowhere else: identifiers are interpolated only from
// the static registry, caller values are always bound parameters.
type Catalogs struct {
	backend  *Backend
	registry *types.Registry
}

// resolve looks up the kind's schema descriptor. Unknown kinds are
// configuration errors, logged louder than data errors so they surface in
// alerting rather than blending into NotFound noise.
func (c *Catalogs) resolve(kind types.Kind) (types.TableConfig, error) {
	cfg, err := c.registry.Resolve(kind)
	if err != nil {
		c.backend.log.Error("catalog kind not registered", "kind", string(kind))
		return types.TableConfig{}, err
	}
	return cfg, nil
}

// List returns catalog rows ordered by name ascending. Catalogs are shown
// as alphabetized pick-lists, so the ordering is a contract. Search matches
// the name column case-insensitively; paging applies after ordering; no
// paging returns the whole table.
func (c *Catalogs) List(ctx context.Context, kind types.Kind, opt types.ListOptions) ([]types.CatalogEntry, error) {
	cfg, err := c.resolve(kind)
	if err != nil {
		return nil, err
	}
	db, err := c.backend.handle()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + strings.Join(selectColumns(cfg), ", ") + " FROM " + cfg.Table
	var args []any
	if opt.Search != "" {
		query += " WHERE " + cfg.NameColumn + " LIKE ?"
		args = append(args, "%"+opt.Search+"%")
	}
	query += " ORDER BY " + cfg.NameColumn + " COLLATE NOCASE ASC"
	if opt.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opt.Limit, opt.Offset)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", cfg.Table, err)
	}
	defer rows.Close()

	results := []types.CatalogEntry{}
	for rows.Next() {
		e, err := scanEntry(cfg, rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", cfg.Table, err)
		}
		results = append(results, *e)
	}
	return results, rows.Err()
}

// Count returns the number of rows matching search, with List's filter
// semantics. It is computed independently of List; under concurrent
// mutation the two are each point-in-time answers.
func (c *Catalogs) Count(ctx context.Context, kind types.Kind, search string) (int, error) {
	cfg, err := c.resolve(kind)
	if err != nil {
		return 0, err
	}
	db, err := c.backend.handle()
	if err != nil {
		return 0, err
	}

	query := "SELECT COUNT(*) FROM " + cfg.Table
	var args []any
	if search != "" {
		query += " WHERE " + cfg.NameColumn + " LIKE ?"
		args = append(args, "%"+search+"%")
	}

	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", cfg.Table, err)
	}
	return n, nil
}

// Get retrieves one row by id. Returns ErrNotFound when no row matches.
func (c *Catalogs) Get(ctx context.Context, kind types.Kind, id int64) (*types.CatalogEntry, error) {
	cfg, err := c.resolve(kind)
	if err != nil {
		return nil, err
	}
	db, err := c.backend.handle()
	if err != nil {
		return nil, err
	}
	return getByID(ctx, db, cfg, id)
}

// Create inserts a row and returns it re-read by the generated id, so the
// result always matches Get, including store-computed defaults for extras
// omitted from the input. A duplicate name fails with ErrConflict naming
// the offending value.
func (c *Catalogs) Create(ctx context.Context, kind types.Kind, in types.CatalogCreate) (*types.CatalogEntry, error) {
	cfg, err := c.resolve(kind)
	if err != nil {
		return nil, err
	}
	db, err := c.backend.handle()
	if err != nil {
		return nil, err
	}

	cols := []string{cfg.NameColumn}
	args := []any{in.Name}
	if cfg.HasDescription && in.Description != nil {
		cols = append(cols, "description")
		args = append(args, *in.Description)
	}
	extraCols, extraArgs, err := bindExtras(cfg, in.Extras)
	if err != nil {
		return nil, err
	}
	cols = append(cols, extraCols...)
	args = append(args, extraArgs...)

	query := "INSERT INTO " + cfg.Table + " (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders(len(cols)) + ")"
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s named %q already exists", types.ErrConflict, cfg.Table, in.Name)
		}
		return nil, fmt.Errorf("inserting into %s: %w", cfg.Table, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading insert id for %s: %w", cfg.Table, err)
	}
	c.backend.log.Debug("catalog row created", "kind", string(kind), "id", id)

	return getByID(ctx, db, cfg, id)
}

// Update applies a partial update and returns the freshly re-read row.
// Existence is confirmed first (ErrNotFound); an update carrying no field
// is a caller error (ErrBadRequest); a duplicate name fails with
// ErrConflict.
func (c *Catalogs) Update(ctx context.Context, kind types.Kind, id int64, in types.CatalogUpdate) (*types.CatalogEntry, error) {
	cfg, err := c.resolve(kind)
	if err != nil {
		return nil, err
	}
	db, err := c.backend.handle()
	if err != nil {
		return nil, err
	}

	if _, err := getByID(ctx, db, cfg, id); err != nil {
		return nil, err
	}
	if in.Empty() {
		return nil, fmt.Errorf("%w: update carries no fields", types.ErrBadRequest)
	}

	var sets []string
	var args []any
	if in.Name != nil {
		sets = append(sets, cfg.NameColumn+" = ?")
		args = append(args, *in.Name)
	}
	if in.Description != nil {
		if !cfg.HasDescription {
			return nil, fmt.Errorf("%w: kind %q has no description column", types.ErrBadRequest, string(kind))
		}
		sets = append(sets, "description = ?")
		args = append(args, *in.Description)
	}
	extraCols, extraArgs, err := bindExtras(cfg, in.Extras)
	if err != nil {
		return nil, err
	}
	for i, col := range extraCols {
		sets = append(sets, col+" = ?")
		args = append(args, extraArgs[i])
	}

	query := "UPDATE " + cfg.Table + " SET " + strings.Join(sets, ", ") + " WHERE " + cfg.IDColumn + " = ?"
	args = append(args, id)
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) && in.Name != nil {
			return nil, fmt.Errorf("%w: %s named %q already exists", types.ErrConflict, cfg.Table, *in.Name)
		}
		return nil, fmt.Errorf("updating %s %d: %w", cfg.Table, id, err)
	}
	c.backend.log.Debug("catalog row updated", "kind", string(kind), "id", id)

	return getByID(ctx, db, cfg, id)
}

// Remove deletes a row and returns the pre-delete snapshot. A row still
// referenced by a dependent table fails with ErrConflict; cascading deletes
// are never attempted.
func (c *Catalogs) Remove(ctx context.Context, kind types.Kind, id int64) (*types.CatalogEntry, error) {
	cfg, err := c.resolve(kind)
	if err != nil {
		return nil, err
	}
	db, err := c.backend.handle()
	if err != nil {
		return nil, err
	}

	snapshot, err := getByID(ctx, db, cfg, id)
	if err != nil {
		return nil, err
	}

	query := "DELETE FROM " + cfg.Table + " WHERE " + cfg.IDColumn + " = ?"
	if _, err := db.ExecContext(ctx, query, id); err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: %s %d is still referenced by dependent records", types.ErrConflict, cfg.Table, id)
		}
		return nil, fmt.Errorf("deleting %s %d: %w", cfg.Table, id, err)
	}
	c.backend.log.Debug("catalog row removed", "kind", string(kind), "id", id)

	return snapshot, nil
}

// ExistsByName reports whether a row with the given name exists,
// case-insensitively. A non-zero excludeID excludes that row, so renaming a
// record to its own name does not read as a duplicate.
func (c *Catalogs) ExistsByName(ctx context.Context, kind types.Kind, name string, excludeID int64) (bool, error) {
	cfg, err := c.resolve(kind)
	if err != nil {
		return false, err
	}
	db, err := c.backend.handle()
	if err != nil {
		return false, err
	}

	query := "SELECT 1 FROM " + cfg.Table + " WHERE " + cfg.NameColumn + " = ?"
	args := []any{name}
	if excludeID != 0 {
		query += " AND " + cfg.IDColumn + " != ?"
		args = append(args, excludeID)
	}

	var one int
	err = db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s name: %w", cfg.Table, err)
	}
	return true, nil
}

// getByID reads one row by primary key.
func getByID(ctx context.Context, db *sql.DB, cfg types.TableConfig, id int64) (*types.CatalogEntry, error) {
	query := "SELECT " + strings.Join(selectColumns(cfg), ", ") + " FROM " + cfg.Table +
		" WHERE " + cfg.IDColumn + " = ?"
	row := db.QueryRowContext(ctx, query, id)

	e, err := scanEntry(cfg, row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %d", types.ErrNotFound, cfg.Table, id)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning %s %d: %w", cfg.Table, id, err)
	}
	return e, nil
}

// selectColumns returns the SELECT list for cfg: id, name, then description
// and extras when declared.
func selectColumns(cfg types.TableConfig) []string {
	cols := []string{cfg.IDColumn, cfg.NameColumn}
	if cfg.HasDescription {
		cols = append(cols, "description")
	}
	for _, col := range cfg.Extras {
		cols = append(cols, col.Name)
	}
	return cols
}

// scanEntry scans one row in selectColumns order. Extra columns are scanned
// as integers and converted per the declared column type.
func scanEntry(cfg types.TableConfig, scan func(dest ...any) error) (*types.CatalogEntry, error) {
	var e types.CatalogEntry
	var desc sql.NullString
	extraVals := make([]sql.NullInt64, len(cfg.Extras))

	dest := []any{&e.ID, &e.Name}
	if cfg.HasDescription {
		dest = append(dest, &desc)
	}
	for i := range extraVals {
		dest = append(dest, &extraVals[i])
	}

	if err := scan(dest...); err != nil {
		return nil, err
	}

	if desc.Valid {
		e.Description = &desc.String
	}
	if len(cfg.Extras) > 0 {
		e.Extras = make(map[string]any, len(cfg.Extras))
		for i, col := range cfg.Extras {
			if !extraVals[i].Valid {
				continue
			}
			switch col.Type {
			case types.ColumnBool:
				e.Extras[col.Name] = extraVals[i].Int64 != 0
			default:
				e.Extras[col.Name] = extraVals[i].Int64
			}
		}
	}
	return &e, nil
}

// bindExtras converts the extras present in the input into column/parameter
// pairs. Keys that are not columns of the kind, or values of the wrong
// type, are caller errors.
func bindExtras(cfg types.TableConfig, extras map[string]any) ([]string, []any, error) {
	for key := range extras {
		if _, ok := cfg.Extra(key); !ok {
			return nil, nil, fmt.Errorf("%w: column %q not defined for table %s", types.ErrBadRequest, key, cfg.Table)
		}
	}

	var cols []string
	var args []any
	for _, col := range cfg.Extras {
		v, ok := extras[col.Name]
		if !ok {
			continue
		}
		bound, err := bindExtraValue(col, v)
		if err != nil {
			return nil, nil, err
		}
		cols = append(cols, col.Name)
		args = append(args, bound)
	}
	return cols, args, nil
}

// bindExtraValue coerces an input value to the column's storage type.
func bindExtraValue(col types.ExtraColumn, v any) (any, error) {
	switch col.Type {
	case types.ColumnBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: column %q expects a boolean", types.ErrBadRequest, col.Name)
		}
		if b {
			return int64(1), nil
		}
		return int64(0), nil
	case types.ColumnInt:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			return int64(n), nil
		}
		return nil, fmt.Errorf("%w: column %q expects an integer", types.ErrBadRequest, col.Name)
	default:
		return nil, fmt.Errorf("%w: column %q has unsupported type", types.ErrBadRequest, col.Name)
	}
}

// placeholders returns "?, ?, ..., ?" of length n.
func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "?"
	}
	return strings.Join(parts, ", ")
}
