// config.go implements the "vaultmd config" command.
//
// With no arguments, prints the effective configuration. With a key, prints
// that value. With a key and value, sets it. The --local flag writes to the
// vault-level .vaultmd/config.yaml instead of the global file.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/jpl-au/vaultmd/internal/config"
	"github.com/spf13/cobra"
)

var configLocal bool

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration",
	Long: `Get or set vaultmd configuration values.

Keys:
  vault.root               Vault root directory
  response.max_characters  Response size budget in characters
  response.token_ratio     Characters-per-token estimate
  response.format          Default result verbosity (concise or detailed)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, args []string) error {
	scope := config.ScopeGlobal
	if configLocal {
		scope = config.ScopeLocal
	}

	cfg, err := config.LoadScope(scope)
	if err != nil {
		return err
	}

	switch len(args) {
	case 0:
		fmt.Fprintf(Out(), "vault.root: %s\n", cfg.Root())
		fmt.Fprintf(Out(), "response.max_characters: %d\n", cfg.MaxCharacters())
		fmt.Fprintf(Out(), "response.token_ratio: %d\n", cfg.TokenRatio())
		fmt.Fprintf(Out(), "response.format: %s\n", cfg.Format())
		return nil
	case 1:
		val, err := configValue(cfg, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(Out(), val)
		return nil
	default:
		if err := setConfigValue(cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(Out(), "set %s = %s\n", args[0], args[1])
		return nil
	}
}

func configValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "vault.root":
		return cfg.Root(), nil
	case "response.max_characters":
		return strconv.Itoa(cfg.MaxCharacters()), nil
	case "response.token_ratio":
		return strconv.Itoa(cfg.TokenRatio()), nil
	case "response.format":
		return cfg.Format(), nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "vault.root":
		cfg.Vault.Root = value
	case "response.max_characters":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("response.max_characters must be an integer: %q", value)
		}
		cfg.Response.MaxCharacters = &n
	case "response.token_ratio":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("response.token_ratio must be an integer: %q", value)
		}
		cfg.Response.TokenRatio = &n
	case "response.format":
		cfg.Response.Format = &value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func init() {
	configCmd.Flags().BoolVar(&configLocal, "local", false, "Use the vault-level config (.vaultmd/config.yaml)")
	rootCmd.AddCommand(configCmd)
}
