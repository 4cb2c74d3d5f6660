// Version command for the docket CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-justice/docket/pkg/docket"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the docket version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("docket", docket.Version)
	},
}
