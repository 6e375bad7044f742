// serve.go implements the "vaultmd serve" command for MCP server operation.
//
// Unlike other commands that run and exit, serve blocks indefinitely
// handling MCP requests over stdio.

package cmd

import (
	"github.com/jpl-au/vaultmd/internal/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server",
	Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Use --vault to serve a specific vault:
  vaultmd serve --vault ~/notes`,
	RunE: runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve(vaultDir)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
