package vault_test

import (
	"testing"
	"time"

	"github.com/jpl-au/vaultmd/internal/vault"
	"github.com/stretchr/testify/assert"
)

func TestStringify(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"int", 42, "42"},
		{"bool", true, "true"},
		{"sequence", []any{"a", "b", 3}, "a b 3"},
		{"time", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), "2026-03-01"},
		{"nested map", map[string]any{"b": "two", "a": []any{"one"}}, "a: one b: two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, vault.Stringify(tt.in))
		})
	}
}

func TestStringify_MapOrderStable(t *testing.T) {
	// Map-valued front matter must render identically on every call; map
	// iteration order would otherwise move phrase boundaries around and
	// make an exact-phrase match flicker between searches.
	addr := map[string]any{
		"street": "Main",
		"city":   "Toronto",
		"state":  "ON",
		"zip":    "M5V",
		"phone":  "555",
		"fax":    "556",
	}

	first := vault.Stringify(addr)
	assert.Equal(t, "city: Toronto fax: 556 phone: 555 state: ON street: Main zip: M5V", first)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, vault.Stringify(addr), "call %d", i)
	}
}
