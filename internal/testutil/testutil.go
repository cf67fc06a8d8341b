// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// FakeExporter is an in-memory uv.Exporter. Outputs are keyed by the
// space-joined export arguments; unknown arguments yield an empty list.
type FakeExporter struct {
	Outputs map[string][]string
	// Err, when set, is returned by every call.
	Err error

	mu    sync.Mutex
	calls [][]string
}

// Export records args and returns the configured output.
func (f *FakeExporter) Export(_ context.Context, args []string) ([]string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string(nil), args...))
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	out := f.Outputs[strings.Join(args, " ")]
	if out == nil {
		return []string{}, nil
	}
	return append([]string(nil), out...), nil
}

// Calls returns the arguments of every Export call so far.
func (f *FakeExporter) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.calls...)
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// ReadFile returns the content of path as a string.
func ReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
