// Init command for the docket CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize docket storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The config directory and default config.yaml already exist here:
		// PersistentPreRunE created them while loading the config.
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		// Attach creates the data directory, applies the schema, and seeds
		// the built-in catalog rows.
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}

		fmt.Println("Docket initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		return nil
	},
}
