// Package pyproject reads the sync rules declared in pyproject.toml.
package pyproject

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/schaermu/sync-pre-commit-with-uv/internal/syncerr"
)

const (
	toolKey    = "tool"
	sectionKey = "sync-pre-commit-with-uv"

	exportArgsKey = "additional_dependencies_uv_params"

	// tableType is what toml.MetaData.Type reports for standard and inline
	// tables.
	tableType = "Hash"
)

type document struct {
	Tool struct {
		Rules map[string]toml.Primitive `toml:"sync-pre-commit-with-uv"`
	} `toml:"tool"`
}

// rawRule mirrors a rule table; pointers tell absent fields apart from
// zero values.
type rawRule struct {
	PypiPackageName *string        `toml:"pypi_package_name"`
	SyncRevision    *bool          `toml:"sync_revision"`
	FailIfNotFound  *bool          `toml:"fail_if_not_found"`
	ExportArgs      toml.Primitive `toml:"additional_dependencies_uv_params"`
}

// Load reads the rules from the pyproject.toml at path.
func Load(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pyproject file: %w", err)
	}
	return Parse(data)
}

// Parse decodes the rules of a pyproject.toml document in declaration order.
// The first invalid rule aborts parsing with a
// *syncerr.ManifestConfigurationError.
func Parse(data []byte) ([]Rule, error) {
	var doc document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		var parseErr toml.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("failed to parse pyproject file: %w", err)
		}
		return nil, &syncerr.ManifestConfigurationError{Reason: err.Error()}
	}

	if t := md.Type(toolKey, sectionKey); t != "" && t != tableType {
		return nil, &syncerr.ManifestConfigurationError{
			Reason: fmt.Sprintf("%s.%s must be a table", toolKey, sectionKey),
		}
	}

	rules := make([]Rule, 0, len(doc.Tool.Rules))
	for _, name := range ruleNames(md, doc.Tool.Rules) {
		rule, err := decodeRule(md, name, doc.Tool.Rules[name])
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	if err := checkUndecoded(md); err != nil {
		return nil, err
	}

	return rules, nil
}

// ruleNames returns the rule keys in the order they appear in the document.
func ruleNames(md toml.MetaData, prims map[string]toml.Primitive) []string {
	names := make([]string, 0, len(prims))
	seen := make(map[string]bool, len(prims))
	for _, key := range md.Keys() {
		if len(key) != 3 || key[0] != toolKey || key[1] != sectionKey {
			continue
		}
		name := key[2]
		if _, ok := prims[name]; !ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	// Keys() covers every rule in practice; keep the rest deterministic anyway.
	var rest []string
	for name := range prims {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func decodeRule(md toml.MetaData, name string, prim toml.Primitive) (Rule, error) {
	if t := md.Type(toolKey, sectionKey, name); t != "" && t != tableType {
		return Rule{}, invalidRule(name, "must be a table")
	}

	var raw rawRule
	if err := md.PrimitiveDecode(prim, &raw); err != nil {
		return Rule{}, invalidRule(name, err.Error())
	}

	rule := DefaultRule(name)
	rule.FailIfNotFound = true
	if raw.PypiPackageName != nil {
		rule.PackageName = *raw.PypiPackageName
	}
	if raw.SyncRevision != nil {
		rule.SyncRevision = *raw.SyncRevision
	}
	if raw.FailIfNotFound != nil {
		rule.FailIfNotFound = *raw.FailIfNotFound
	}

	if md.IsDefined(toolKey, sectionKey, name, exportArgsKey) {
		export, err := decodeExportArgs(md, raw.ExportArgs)
		if err != nil {
			return Rule{}, invalidRule(name, err.Error())
		}
		rule.Export = export
	}

	return rule, nil
}

// decodeExportArgs accepts either a list of strings or a table of string
// lists keyed by hook id.
func decodeExportArgs(md toml.MetaData, prim toml.Primitive) (ExportArgs, error) {
	var value any
	if err := md.PrimitiveDecode(prim, &value); err != nil {
		return ExportArgs{}, err
	}

	switch v := value.(type) {
	case []any:
		args, ok := stringList(v)
		if !ok {
			return ExportArgs{}, fmt.Errorf("%s must be a list of strings", exportArgsKey)
		}
		return ExportForAllHooks(args), nil
	case map[string]any:
		perHook := make(map[string][]string, len(v))
		for hookID, raw := range v {
			list, ok := raw.([]any)
			if !ok {
				return ExportArgs{}, fmt.Errorf("%s.%s must be a list of strings", exportArgsKey, hookID)
			}
			args, ok := stringList(list)
			if !ok {
				return ExportArgs{}, fmt.Errorf("%s.%s must be a list of strings", exportArgsKey, hookID)
			}
			perHook[hookID] = args
		}
		return ExportPerHook(perHook), nil
	default:
		return ExportArgs{}, fmt.Errorf("%s must be a list of strings or a table of string lists", exportArgsKey)
	}
}

func stringList(values []any) ([]string, bool) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// checkUndecoded rejects fields of a rule table that no rule option knows.
func checkUndecoded(md toml.MetaData) error {
	for _, key := range md.Undecoded() {
		if len(key) != 4 || key[0] != toolKey || key[1] != sectionKey {
			continue
		}
		return invalidRule(key[2], fmt.Sprintf("unknown field %q", key[3]))
	}
	return nil
}

func invalidRule(name, reason string) error {
	return &syncerr.ManifestConfigurationError{
		Reason: fmt.Sprintf("%s: %s", strings.Join([]string{toolKey, sectionKey, name}, "."), reason),
	}
}
