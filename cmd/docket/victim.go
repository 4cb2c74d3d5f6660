// Victim commands manage the victim register.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-justice/docket/pkg/types"
)

var flagVictimNotes string

var victimCmd = &cobra.Command{
	Use:   "victim",
	Short: "Manage the victim register",
}

func init() {
	victimAddCmd.Flags().StringVar(&flagVictimNotes, "notes", "", "free-text notes")

	victimCmd.AddCommand(victimAddCmd)
	victimCmd.AddCommand(victimGetCmd)
	victimCmd.AddCommand(victimListCmd)
}

var victimAddCmd = &cobra.Command{
	Use:   "add <full-name>",
	Short: "Register a victim",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := &types.Victim{FullName: args[0]}
		if cmd.Flags().Changed("notes") {
			v.Notes = &flagVictimNotes
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		created, err := backend.Victims().Create(cmd.Context(), v)
		if err != nil {
			return err
		}
		return printVictim(created)
	},
}

var victimGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a victim by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		v, err := backend.Victims().Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printVictim(v)
	},
}

var victimListCmd = &cobra.Command{
	Use:   "list",
	Short: "List victims ordered by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		victims, err := backend.Victims().List(cmd.Context())
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

// printVictim prints one victim, as JSON when --json is set.
func printVictim(v *types.Victim) error {
	if flagJSON {
		return printJSON(v)
	}
	line := fmt.Sprintf("%d\t%s", v.VictimID, v.FullName)
	if v.Notes != nil {
		line += "\t" + *v.Notes
	}
	fmt.Println(line)
	return nil
}
