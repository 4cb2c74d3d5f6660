// Shared helpers for docket CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/open-justice/docket/internal/sqlite"
	"github.com/open-justice/docket/pkg/types"
)

// validKindsStr is a comma-separated list of valid catalog kinds for error output.
var validKindsStr = func() string {
	names := make([]string, len(types.Kinds))
	for i, k := range types.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}()

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		DataDir:  dataDir,
		LogLevel: configLogLevel,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// parseKind validates a catalog kind argument against the registered kinds.
func parseKind(arg string) (types.Kind, error) {
	kind := types.Kind(arg)
	for _, k := range types.Kinds {
		if kind == k {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: unknown catalog %q (valid: %s)", types.ErrBadRequest, arg, validKindsStr)
}

// parseID parses a positive integer row id.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidID, arg)
	}
	return id, nil
}

// parseExtras converts key=value arguments into a typed extras map using the
// kind's declared columns. Bool columns accept true/false, int columns a
// decimal integer.
func parseExtras(kind types.Kind, args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, nil
	}

	registry := types.NewRegistry()
	cfg, err := registry.Resolve(kind)
	if err != nil {
		return nil, err
	}

	extras := make(map[string]any, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: invalid field %q (expected key=value)", types.ErrBadRequest, arg)
		}
		key, value := parts[0], parts[1]

		col, ok := cfg.Extra(key)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no field %q", types.ErrBadRequest, kind, key)
		}

		switch col.Type {
		case types.ColumnBool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q wants true or false, got %q", types.ErrBadRequest, key, value)
			}
			extras[key] = b
		case types.ColumnInt:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q wants an integer, got %q", types.ErrBadRequest, key, value)
			}
			extras[key] = n
		}
	}

	return extras, nil
}

// printJSON marshals v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// printEntry prints one catalog entry, as JSON when --json is set.
func printEntry(e *types.CatalogEntry) error {
	if flagJSON {
		return printJSON(e)
	}
	line := fmt.Sprintf("%d\t%s", e.ID, e.Name)
	if e.Description != nil {
		line += "\t" + *e.Description
	}
	for _, col := range sortedExtraKeys(e.Extras) {
		line += fmt.Sprintf("\t%s=%v", col, e.Extras[col])
	}
	fmt.Println(line)
	return nil
}

// sortedExtraKeys returns the extras keys in a stable order.
func sortedExtraKeys(extras map[string]any) []string {
	keys := make([]string, 0, len(extras))
	for k := range extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// exitCodeFor maps an error to the CLI exit code: caller mistakes (bad input,
// missing rows, constraint conflicts) exit 1, everything else exits 2.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrBadRequest),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrConflict),
		errors.Is(err, types.ErrUnknownKind),
		errors.Is(err, types.ErrInvalidID):
		return exitUserError
	default:
		return exitSysError
	}
}
