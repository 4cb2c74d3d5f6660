// Link commands manage case ↔ victim associations.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-justice/docket/pkg/types"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage case and victim associations",
}

func init() {
	linkCmd.AddCommand(linkAddCmd)
	linkCmd.AddCommand(linkAddManyCmd)
	linkCmd.AddCommand(linkRmCmd)
	linkCmd.AddCommand(linkExistsCmd)
	linkCmd.AddCommand(linkVictimsCmd)
	linkCmd.AddCommand(linkCasesCmd)
}

var linkAddCmd = &cobra.Command{
	Use:   "add <case-id> <victim-id>",
	Short: "Associate a victim with a case",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID, victimID, err := parsePair(args)
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		assoc, err := backend.CaseVictims().Associate(cmd.Context(), caseID, victimID)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(assoc)
		}
		fmt.Printf("linked case %d and victim %d\n", assoc.CaseID, assoc.VictimID)
		return nil
	},
}

var linkAddManyCmd = &cobra.Command{
	Use:   "add-many <case-id> <victim-id>...",
	Short: "Associate several victims with a case",
	Long: `Associate several victims with one case in a single call. The case is
validated once; each victim succeeds or fails on its own, and the per-victim
outcomes are reported in the input order.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID, err := parseID(args[0])
		if err != nil {
			return err
		}

		victimIDs := make([]int64, 0, len(args)-1)
		for _, arg := range args[1:] {
			id, err := parseID(arg)
			if err != nil {
				return err
			}
			victimIDs = append(victimIDs, id)
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		outcomes, err := backend.CaseVictims().AssociateMany(cmd.Context(), caseID, victimIDs)
		if err != nil {
			return err
		}

		if flagJSON {
			type outcomeJSON struct {
				VictimID   int64  `json:"victim_id"`
				Associated bool   `json:"associated"`
				Error      string `json:"error,omitempty"`
			}
			out := make([]outcomeJSON, len(outcomes))
			for i, o := range outcomes {
				out[i] = outcomeJSON{VictimID: o.VictimID, Associated: o.Associated()}
				if o.Err != nil {
					out[i].Error = o.Err.Error()
				}
			}
			return printJSON(out)
		}

		failed := 0
		for _, o := range outcomes {
			if o.Associated() {
				fmt.Printf("victim %d: linked\n", o.VictimID)
			} else {
				failed++
				fmt.Printf("victim %d: %v\n", o.VictimID, o.Err)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%w: %d of %d victims not linked", types.ErrConflict, failed, len(outcomes))
		}
		return nil
	},
}

var linkRmCmd = &cobra.Command{
	Use:   "rm <case-id> <victim-id>",
	Short: "Remove a case and victim association",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID, victimID, err := parsePair(args)
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		assoc, err := backend.CaseVictims().Disassociate(cmd.Context(), caseID, victimID)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(assoc)
		}
		fmt.Printf("unlinked case %d and victim %d\n", assoc.CaseID, assoc.VictimID)
		return nil
	},
}

var linkExistsCmd = &cobra.Command{
	Use:   "exists <case-id> <victim-id>",
	Short: "Check whether a case and victim are associated",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID, victimID, err := parsePair(args)
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		ok, err := backend.CaseVictims().Exists(cmd.Context(), caseID, victimID)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(map[string]bool{"exists": ok})
		}
		fmt.Println(ok)
		return nil
	},
}

var linkVictimsCmd = &cobra.Command{
	Use:   "victims <case-id>",
	Short: "List the victims associated with a case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID, err := parseID(args[0])
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		victims, err := backend.CaseVictims().VictimsByCase(cmd.Context(), caseID)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(victims)
		}
		for i := range victims {
			if err := printVictim(&victims[i]); err != nil {
				return err
			}
		}
		return nil
	},
}

var linkCasesCmd = &cobra.Command{
	Use:   "cases <victim-id>",
	Short: "List the cases a victim is associated with",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		victimID, err := parseID(args[0])
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		cases, err := backend.CaseVictims().CasesByVictim(cmd.Context(), victimID)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(cases)
		}
		for i := range cases {
			if err := printCase(&cases[i]); err != nil {
				return err
			}
		}
		return nil
	},
}

// parsePair parses the two-argument <case-id> <victim-id> form.
func parsePair(args []string) (caseID, victimID int64, err error) {
	caseID, err = parseID(args[0])
	if err != nil {
		return 0, 0, err
	}
	victimID, err = parseID(args[1])
	if err != nil {
		return 0, 0, err
	}
	return caseID, victimID, nil
}
