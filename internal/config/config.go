package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/schaermu/sync-pre-commit-with-uv/internal/syncerr"
	"github.com/schaermu/sync-pre-commit-with-uv/internal/uv"
)

// Keys read from viper. They double as command line flag names.
const (
	KeyPyprojectConfig = "pyproject-config"
	KeyPreCommitConfig = "pre-commit-config"
	KeyUVLock          = "uv-lock"
	KeyUVBinary        = "uv-binary"
	KeyDryRun          = "dry-run"
	KeyLogLevel        = "log-level"
	KeyLogFormat       = "log-format"
)

// Default file names. The pre-commit config and lock file default to
// siblings of pyproject.toml.
const (
	DefaultPyprojectFile = "pyproject.toml"
	DefaultPreCommitFile = ".pre-commit-config.yaml"
	DefaultUVLockFile    = "uv.lock"

	DefaultLogLevel       = "warn"
	DefaultDryRunLogLevel = "info"
	DefaultLogFormat      = "text"
)

// Config represents the settings of one sync run
type Config struct {
	Paths  PathsConfig
	UV     UVConfig
	Log    LogConfig
	DryRun bool
}

// PathsConfig locates the three input files
type PathsConfig struct {
	Pyproject string
	PreCommit string
	UVLock    string
}

// UVConfig configures the uv invocation
type UVConfig struct {
	Binary string
}

// LogConfig configures logging output
type LogConfig struct {
	Level  string
	Format string
}

// Load builds the configuration from flags and environment bound to v,
// resolves default paths and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Paths: PathsConfig{
			Pyproject: v.GetString(KeyPyprojectConfig),
			PreCommit: v.GetString(KeyPreCommitConfig),
			UVLock:    v.GetString(KeyUVLock),
		},
		UV: UVConfig{
			Binary: v.GetString(KeyUVBinary),
		},
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		DryRun: v.GetBool(KeyDryRun),
	}

	cfg.expandEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Missing paths are user errors and are reported as they are.
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// expandEnv expands environment variables in all path fields
func (c *Config) expandEnv() {
	c.Paths.Pyproject = os.ExpandEnv(c.Paths.Pyproject)
	c.Paths.PreCommit = os.ExpandEnv(c.Paths.PreCommit)
	c.Paths.UVLock = os.ExpandEnv(c.Paths.UVLock)
	c.UV.Binary = os.ExpandEnv(c.UV.Binary)
}

// applyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) applyDefaults() {
	if c.Paths.Pyproject == "" {
		c.Paths.Pyproject = DefaultPyprojectFile
	}
	if c.UV.Binary == "" {
		c.UV.Binary = uv.DefaultBinary
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
		if c.DryRun {
			c.Log.Level = DefaultDryRunLogLevel
		}
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json", "logfmt":
		// valid
	default:
		return fmt.Errorf("invalid log format: %s (must be text, json, or logfmt)", c.Log.Format)
	}

	return nil
}

// Resolve checks that pyproject.toml exists and fills in the pre-commit
// config and lock file paths from its directory when they were not given.
// Every path must exist; a missing one yields *syncerr.PathDoesNotExistError.
func (c *Config) Resolve() error {
	if err := mustExist(c.Paths.Pyproject); err != nil {
		return err
	}

	var err error
	if c.Paths.PreCommit, err = siblingOrGiven(c.Paths.PreCommit, c.Paths.Pyproject, DefaultPreCommitFile); err != nil {
		return err
	}
	if c.Paths.UVLock, err = siblingOrGiven(c.Paths.UVLock, c.Paths.Pyproject, DefaultUVLockFile); err != nil {
		return err
	}
	return nil
}

// ExportDir returns the directory uv export runs in: the project root
// holding pyproject.toml.
func (c *Config) ExportDir() string {
	return filepath.Dir(c.Paths.Pyproject)
}

func siblingOrGiven(given, sibling, name string) (string, error) {
	path := given
	if path == "" {
		path = filepath.Join(filepath.Dir(sibling), name)
	}
	if err := mustExist(path); err != nil {
		return "", err
	}
	return path, nil
}

func mustExist(path string) error {
	if _, err := os.Stat(path); err != nil {
		return &syncerr.PathDoesNotExistError{Path: path}
	}
	return nil
}
