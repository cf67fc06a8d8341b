// Package uvlock reads the resolved package versions from a uv.lock file.
package uvlock

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Package is one resolved package of the lock file.
type Package struct {
	Name    string
	Version string
}

type lockFile struct {
	Package []map[string]any `toml:"package"`
}

// Load reads the packages of the uv.lock at path.
func Load(path string) ([]Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lock file: %w", err)
	}
	return Parse(data)
}

// Parse decodes the [[package]] entries of a lock file. Entries without a
// string name and version (virtual or editable projects) are skipped.
func Parse(data []byte) ([]Package, error) {
	var lock lockFile
	if _, err := toml.Decode(string(data), &lock); err != nil {
		return nil, fmt.Errorf("failed to parse lock file: %w", err)
	}

	packages := make([]Package, 0, len(lock.Package))
	for _, entry := range lock.Package {
		name, ok := entry["name"].(string)
		if !ok {
			continue
		}
		version, ok := entry["version"].(string)
		if !ok {
			continue
		}
		packages = append(packages, Package{Name: name, Version: version})
	}

	return packages, nil
}
