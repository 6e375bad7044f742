// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> search engine -> vault -> filesystem.
//
// These tests build the real binary and run it as a subprocess, so flag
// parsing, exit codes, and output framing are tested exactly as users see
// them. HOME is pointed at a temp directory so config and the audit log
// never touch the developer's real home.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the vaultmd binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "vaultmd-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "vaultmd"
		if os.PathSeparator == '\\' {
			binaryName = "vaultmd.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd, err := os.Getwd()
		if err != nil {
			buildErr = err
			return
		}
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

// testEnv holds test environment state: a temp vault and an isolated HOME.
type testEnv struct {
	t      *testing.T
	vault  string
	home   string
	binary string
}

// newTestEnv creates a temporary vault directory with no notes.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		t:      t,
		vault:  t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}
}

// note writes a markdown note into the vault.
func (e *testEnv) note(rel, content string) {
	e.t.Helper()
	p := filepath.Join(e.vault, filepath.FromSlash(rel))
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
}

// run executes vaultmd against the test vault and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("vaultmd %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes vaultmd and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	args = append(args, "--vault", e.vault)
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.vault
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// runStdin executes vaultmd with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()

	args = append(args, "--vault", e.vault)
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.vault
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("vaultmd %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}
