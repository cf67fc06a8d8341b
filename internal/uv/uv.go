// Package uv computes hook dependency lists by running "uv export".
package uv

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBinary is the uv executable looked up on PATH.
const DefaultBinary = "uv"

// baseExportArgs make uv print bare requirement lines.
var baseExportArgs = []string{
	"export",
	"--no-hashes",
	"--no-header",
	"--no-emit-project",
	"--no-emit-workspace",
	"--no-annotate",
}

// Exporter resolves uv export arguments into requirement strings.
type Exporter interface {
	// Export returns the requirements printed by uv for args, in order.
	Export(ctx context.Context, args []string) ([]string, error)
}

// ExporterFunc adapts a function to the Exporter interface.
type ExporterFunc func(ctx context.Context, args []string) ([]string, error)

// Export calls f.
func (f ExporterFunc) Export(ctx context.Context, args []string) ([]string, error) {
	return f(ctx, args)
}

// ShellExporter implements Exporter by shelling out to uv
type ShellExporter struct {
	binary string
	dir    string
}

// NewShellExporter creates an exporter running binary in dir. An empty binary
// means DefaultBinary; an empty dir means the current directory.
func NewShellExporter(binary, dir string) *ShellExporter {
	if binary == "" {
		binary = DefaultBinary
	}
	return &ShellExporter{
		binary: binary,
		dir:    dir,
	}
}

// Export runs uv export with args appended to the fixed flags.
func (e *ShellExporter) Export(ctx context.Context, args []string) ([]string, error) {
	cmdArgs := make([]string, 0, len(baseExportArgs)+len(args))
	cmdArgs = append(cmdArgs, baseExportArgs...)
	cmdArgs = append(cmdArgs, args...)

	cmd := exec.CommandContext(ctx, e.binary, cmdArgs...)
	cmd.Dir = e.dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w: %s",
			e.binary, strings.Join(cmdArgs, " "), err, strings.TrimSpace(stderr.String()))
	}

	return splitLines(string(output)), nil
}

// splitLines trims the output and splits it into lines. Empty output yields an
// empty list.
func splitLines(output string) []string {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}
