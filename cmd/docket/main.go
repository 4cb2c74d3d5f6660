// Package main provides the docket CLI, a command-line front end for the
// juvenile case-management storage backend.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "docket:", err)
		os.Exit(exitCodeFor(err))
	}
}
