// Catalog commands provide generic CRUD over every registered catalog kind.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-justice/docket/pkg/types"
)

var (
	flagCatalogSearch string
	flagCatalogLimit  int
	flagCatalogOffset int
	flagCatalogDesc   string
	flagCatalogName   string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage catalog tables",
	Long: `Catalog commands work on any registered catalog kind through a single
code path. Kind-specific fields are passed as key=value arguments.

Valid kinds: ` + validKindsStr + `

Example:
  docket catalog list offense_types
  docket catalog add measure_types "weekend detention" custodial=true
  docket catalog set hearing_types 3 lead_days=20
  docket catalog rm institutions 2`,
}

func init() {
	catalogListCmd.Flags().StringVar(&flagCatalogSearch, "search", "", "filter by name substring (case-insensitive)")
	catalogListCmd.Flags().IntVar(&flagCatalogLimit, "limit", 0, "maximum rows to return (0 = all)")
	catalogListCmd.Flags().IntVar(&flagCatalogOffset, "offset", 0, "rows to skip")
	catalogCountCmd.Flags().StringVar(&flagCatalogSearch, "search", "", "filter by name substring (case-insensitive)")
	catalogAddCmd.Flags().StringVar(&flagCatalogDesc, "desc", "", "description text")
	catalogSetCmd.Flags().StringVar(&flagCatalogName, "name", "", "new name")
	catalogSetCmd.Flags().StringVar(&flagCatalogDesc, "desc", "", "new description text")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogCountCmd)
	catalogCmd.AddCommand(catalogGetCmd)
	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogSetCmd)
	catalogCmd.AddCommand(catalogRmCmd)
}

var catalogListCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "List catalog rows ordered by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		entries, err := backend.Catalogs().List(cmd.Context(), kind, types.ListOptions{
			Search: flagCatalogSearch,
			Limit:  flagCatalogLimit,
			Offset: flagCatalogOffset,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(entries)
		}
		for i := range entries {
			if err := printEntry(&entries[i]); err != nil {
				return err
			}
		}
		return nil
	},
}

var catalogCountCmd = &cobra.Command{
	Use:   "count <kind>",
	Short: "Count catalog rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		n, err := backend.Catalogs().Count(cmd.Context(), kind, flagCatalogSearch)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(map[string]int{"count": n})
		}
		fmt.Println(n)
		return nil
	},
}

var catalogGetCmd = &cobra.Command{
	Use:   "get <kind> <id>",
	Short: "Get a catalog row by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		entry, err := backend.Catalogs().Get(cmd.Context(), kind, id)
		if err != nil {
			return err
		}
		return printEntry(entry)
	},
}

var catalogAddCmd = &cobra.Command{
	Use:   "add <kind> <name> [field=value...]",
	Short: "Add a catalog row",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		extras, err := parseExtras(kind, args[2:])
		if err != nil {
			return err
		}

		in := types.CatalogCreate{Name: args[1], Extras: extras}
		if cmd.Flags().Changed("desc") {
			in.Description = &flagCatalogDesc
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		entry, err := backend.Catalogs().Create(cmd.Context(), kind, in)
		if err != nil {
			return err
		}
		return printEntry(entry)
	},
}

var catalogSetCmd = &cobra.Command{
	Use:   "set <kind> <id> [field=value...]",
	Short: "Update fields of a catalog row",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		extras, err := parseExtras(kind, args[2:])
		if err != nil {
			return err
		}

		in := types.CatalogUpdate{Extras: extras}
		if cmd.Flags().Changed("name") {
			in.Name = &flagCatalogName
		}
		if cmd.Flags().Changed("desc") {
			in.Description = &flagCatalogDesc
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		entry, err := backend.Catalogs().Update(cmd.Context(), kind, id, in)
		if err != nil {
			return err
		}
		return printEntry(entry)
	},
}

var catalogRmCmd = &cobra.Command{
	Use:   "rm <kind> <id>",
	Short: "Remove a catalog row",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		entry, err := backend.Catalogs().Remove(cmd.Context(), kind, id)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(entry)
		}
		fmt.Printf("removed %s %d (%s)\n", kind, entry.ID, entry.Name)
		return nil
	},
}
