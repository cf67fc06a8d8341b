//go:build integration

package uvcli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

const (
	binaryName     = "sync-pre-commit-with-uv"
	defaultTimeout = 5 * time.Minute
)

// Harness builds the command and runs it against a scratch uv project
type Harness struct {
	t       *testing.T
	binary  string
	uv      string
	project string
}

// NewHarness creates a new test harness. The test is skipped when uv is not
// on PATH.
func NewHarness(t *testing.T) *Harness {
	t.Helper()
	uvPath, err := exec.LookPath("uv")
	if err != nil {
		t.Skip("uv not found on PATH")
	}
	return &Harness{
		t:       t,
		uv:      uvPath,
		project: t.TempDir(),
	}
}

// BuildBinary compiles the command into a temp directory
func (h *Harness) BuildBinary(ctx context.Context) error {
	h.t.Helper()

	projectRoot, err := findProjectRoot()
	if err != nil {
		return fmt.Errorf("get project root: %w", err)
	}

	h.binary = filepath.Join(h.t.TempDir(), binaryName)
	cmd := exec.CommandContext(ctx, "go", "build", "-o", h.binary, "./cmd/"+binaryName)
	cmd.Dir = projectRoot
	cmd.Stdout = &testWriter{t: h.t, prefix: "[build] "}
	cmd.Stderr = &testWriter{t: h.t, prefix: "[build] "}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	return nil
}

// WriteFile writes a file into the project directory
func (h *Harness) WriteFile(name, content string) {
	h.t.Helper()
	if err := os.WriteFile(filepath.Join(h.project, name), []byte(content), 0o644); err != nil {
		h.t.Fatalf("write %s: %v", name, err)
	}
}

// ReadFile reads a file from the project directory
func (h *Harness) ReadFile(name string) string {
	h.t.Helper()
	data, err := os.ReadFile(filepath.Join(h.project, name))
	if err != nil {
		h.t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

// Lock runs "uv lock" in the project directory
func (h *Harness) Lock(ctx context.Context) {
	h.t.Helper()
	cmd := exec.CommandContext(ctx, h.uv, "lock")
	cmd.Dir = h.project
	cmd.Stdout = &testWriter{t: h.t, prefix: "[uv] "}
	cmd.Stderr = &testWriter{t: h.t, prefix: "[uv] "}
	if err := cmd.Run(); err != nil {
		h.t.Fatalf("uv lock: %v", err)
	}
}

// Run executes the command in the project directory
func (h *Harness) Run(ctx context.Context, args ...string) (string, string, int, error) {
	h.t.Helper()
	if h.binary == "" {
		return "", "", 0, fmt.Errorf("binary not built")
	}

	cmd := exec.CommandContext(ctx, h.binary, args...)
	cmd.Dir = h.project

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return "", "", 0, fmt.Errorf("exec failed: %w", err)
		}
	}

	return stdout.String(), stderr.String(), exitCode, nil
}

// MustRun executes the command and fails the test if it exits non-zero
func (h *Harness) MustRun(ctx context.Context, args ...string) (string, string) {
	h.t.Helper()
	stdout, stderr, exitCode, err := h.Run(ctx, args...)
	if err != nil {
		h.t.Fatalf("exec failed: %v", err)
	}
	if exitCode != 0 {
		h.t.Fatalf("command failed with exit code %d\nstdout: %s\nstderr: %s\nargs: %v",
			exitCode, stdout, stderr, args)
	}
	return stdout, stderr
}

// testWriter wraps test logging for command output
type testWriter struct {
	t      *testing.T
	prefix string
}

func (w *testWriter) Write(p []byte) (n int, err error) {
	for _, line := range strings.Split(string(p), "\n") {
		if line != "" {
			w.t.Log(w.prefix + line)
		}
	}
	return len(p), nil
}

var _ io.Writer = (*testWriter)(nil)

// findProjectRoot walks up from this source file to the directory holding go.mod
func findProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to get caller information")
	}

	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found in any parent directory")
		}
		dir = parent
	}
}
