/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
//
// Design: flags are defined as package-level variables and bound to the
// root command. Commands read flag values through accessor functions rather
// than directly accessing the variables, keeping cobra internals out of
// command logic.

package cmd

import (
	"io"
	"os"
	"path/filepath"

	"github.com/jpl-au/vaultmd/internal/config"
	"github.com/jpl-au/vaultmd/internal/log"
	"github.com/jpl-au/vaultmd/internal/vault"
)

var vaultDir string

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// VaultDir returns the resolved vault root.
// Priority: --vault flag > VAULTMD_VAULT env var > config > working directory.
func VaultDir() string {
	if vaultDir != "" {
		return vaultDir
	}
	if env := os.Getenv("VAULTMD_VAULT"); env != "" {
		return env
	}
	if cfg, err := config.Load(); err == nil {
		return cfg.Root()
	}
	return "."
}

// openVault opens the resolved vault and points the audit log at it.
func openVault() (*vault.Vault, error) {
	v, err := vault.Open(VaultDir())
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(v.Root()); err == nil {
		log.SetVault(abs)
	}
	return v, nil
}

// loadConfig loads configuration, falling back to defaults when the config
// file is missing or unreadable so read-only commands still work.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		return &config.Config{}
	}
	return cfg
}

func init() {
	rootCmd.PersistentFlags().StringVar(&vaultDir, "vault", "", "Vault root directory (default: config or current directory)")
}
