// Package log provides centralised audit logging for vaultmd operations.
// Logs are stored in ~/.vaultmd/log/vaultmd-log.db and track CLI commands
// and MCP tool invocations across vaults.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("search:search", "search").
//		Query(raw).
//		Detail("count", len(results)).
//		Write(err)
//
// The source parameter follows the format "{command}" for CLI commands or
// "mcp:{tool}" for MCP tools. Examples: "cli:search", "mcp:vault_search".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single audit log entry.
type Entry struct {
	Source string // e.g. "cli:search", "mcp:vault_search"
	Action string // verb: search, list, read, create, edit
	Path   string // note path targeted, when applicable
	Query  string // search query or pattern, when applicable

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool
	Error   string
	Detail  map[string]any // operation-specific data (counts, filters)
}

// Builder constructs a log entry using a fluent API. Create with [Event],
// chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Path sets the note path this operation targets.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Query sets the search query or pattern for search operations.
func (b *Builder) Query(q string) *Builder {
	b.entry.Query = q
	return b
}

// Detail adds a key-value pair to the entry's detail map. Call multiple
// times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write records the entry, deriving success/failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort
// logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetVault sets the vault identifier for subsequent log entries. The dir
// should be the absolute path to the vault root.
func SetVault(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.vault = hash(dir)
	}
}

// Log writes an entry. Safe to call if the logger is not initialised
// (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
