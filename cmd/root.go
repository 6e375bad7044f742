/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Design: commands open the vault lazily in their own RunE rather than in a
// PersistentPreRunE. This keeps bootstrap commands (config, serve with an
// explicit root) working without a vault in the working directory.

package cmd

import (
	"fmt"
	"os"

	"github.com/jpl-au/vaultmd/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vaultmd",
	Short: "Search and manage a markdown notes vault",
	Long:  `Relevance-ranked search over a folder of markdown notes, with front matter filters, glob and natural-language entry modes, and an MCP server for LLM integration.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, executes the command, and exits 1 on error.
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	if err := rootCmd.Execute(); err != nil {
		log.Close()
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}
