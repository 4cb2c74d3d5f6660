// Case commands manage case files.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-justice/docket/pkg/types"
)

var (
	flagCaseNumber      string
	flagCaseOffense     int64
	flagCaseStage       int64
	flagCaseMeasure     int64
	flagCaseInstitution int64
)

var caseCmd = &cobra.Command{
	Use:   "case",
	Short: "Manage case files",
}

func init() {
	caseAddCmd.Flags().StringVar(&flagCaseNumber, "number", "", "case number (generated when empty)")
	caseAddCmd.Flags().Int64Var(&flagCaseOffense, "offense", 0, "offense type id (required)")
	caseAddCmd.Flags().Int64Var(&flagCaseStage, "stage", 0, "case stage id (required)")
	caseAddCmd.Flags().Int64Var(&flagCaseMeasure, "measure", 0, "measure type id")
	caseAddCmd.Flags().Int64Var(&flagCaseInstitution, "institution", 0, "institution id")
	caseAddCmd.MarkFlagRequired("offense")
	caseAddCmd.MarkFlagRequired("stage")

	caseCmd.AddCommand(caseAddCmd)
	caseCmd.AddCommand(caseGetCmd)
	caseCmd.AddCommand(caseListCmd)
}

var caseAddCmd = &cobra.Command{
	Use:   "add <defendant>",
	Short: "Open a new case file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := &types.Case{
			CaseNumber: flagCaseNumber,
			Defendant:  args[0],
			OffenseID:  flagCaseOffense,
			StageID:    flagCaseStage,
		}
		if flagCaseMeasure != 0 {
			c.MeasureTypeID = &flagCaseMeasure
		}
		if flagCaseInstitution != 0 {
			c.InstitutionID = &flagCaseInstitution
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		created, err := backend.Cases().Create(cmd.Context(), c)
		if err != nil {
			return err
		}
		return printCase(created)
	},
}

var caseGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a case file by id",
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

		c, err := backend.Cases().Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printCase(c)
	},
}

var caseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List case files, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		cases, err := backend.Cases().List(cmd.Context())
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

// printCase prints one case file, as JSON when --json is set.
func printCase(c *types.Case) error {
	if flagJSON {
		return printJSON(c)
	}
	fmt.Printf("%d\t%s\t%s\topened %s\n", c.CaseID, c.CaseNumber, c.Defendant, c.OpenedAt.Format("2006-01-02"))
	return nil
}
