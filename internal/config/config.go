// Package config provides reading and writing of vaultmd configuration.
// Supports both global (~/.vaultmd/config.yaml) and local (.vaultmd/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use the local scope for per-vault settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrInvalidValue is returned when a config value is out of bounds.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.vaultmd/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is vault-specific config in .vaultmd/config.yaml
	ScopeLocal
)

// Vault holds vault location settings.
type Vault struct {
	Root string `yaml:"root,omitempty"`
}

// Response holds response budgeting settings.
type Response struct {
	// MaxCharacters caps response size. The truncator guarantees responses
	// never exceed it.
	MaxCharacters *int `yaml:"max_characters,omitempty"`
	// TokenRatio is the characters-per-token estimate used for the
	// estimated_tokens metadata field.
	TokenRatio *int `yaml:"token_ratio,omitempty"`
	// Format is the default result verbosity: concise or detailed.
	Format *string `yaml:"format,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultMaxCharacters = 20000
	DefaultTokenRatio    = 4
	DefaultFormat        = "detailed"
)

// Validation bounds for configuration values.
const (
	MinMaxCharacters = 256
	MaxMaxCharacters = 10 * 1024 * 1024
	MinTokenRatio    = 1
	MaxTokenRatio    = 100
)

// Config contains configuration for vaultmd.
type Config struct {
	Vault    Vault    `yaml:"vault,omitempty"`
	Response Response `yaml:"response,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.Response.MaxCharacters != nil {
		v := *c.Response.MaxCharacters
		if v < MinMaxCharacters || v > MaxMaxCharacters {
			return fmt.Errorf("%w: max_characters must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxCharacters, MaxMaxCharacters, v)
		}
	}
	if c.Response.TokenRatio != nil {
		v := *c.Response.TokenRatio
		if v < MinTokenRatio || v > MaxTokenRatio {
			return fmt.Errorf("%w: token_ratio must be between %d and %d, got %d",
				ErrInvalidValue, MinTokenRatio, MaxTokenRatio, v)
		}
	}
	if c.Response.Format != nil {
		v := *c.Response.Format
		if v != "concise" && v != "detailed" {
			return fmt.Errorf("%w: format must be concise or detailed, got %q",
				ErrInvalidValue, v)
		}
	}
	return nil
}

// Root returns the configured vault root, or the current directory.
func (c *Config) Root() string {
	if c.Vault.Root == "" {
		return "."
	}
	return c.Vault.Root
}

// MaxCharacters returns the response character budget (defaults to 20000).
func (c *Config) MaxCharacters() int {
	if c.Response.MaxCharacters == nil {
		return DefaultMaxCharacters
	}
	return *c.Response.MaxCharacters
}

// TokenRatio returns the characters-per-token estimate (defaults to 4).
func (c *Config) TokenRatio() int {
	if c.Response.TokenRatio == nil {
		return DefaultTokenRatio
	}
	return *c.Response.TokenRatio
}

// Format returns the default result format (defaults to detailed).
func (c *Config) Format() string {
	if c.Response.Format == nil {
		return DefaultFormat
	}
	return *c.Response.Format
}

// LocalPath returns the path to the local (vault) config file.
func LocalPath() string {
	return filepath.Join(".vaultmd", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vaultmd", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
