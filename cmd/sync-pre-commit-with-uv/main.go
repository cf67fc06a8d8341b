package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/schaermu/sync-pre-commit-with-uv/internal/config"
	"github.com/schaermu/sync-pre-commit-with-uv/internal/logging"
	"github.com/schaermu/sync-pre-commit-with-uv/internal/sync"
	"github.com/schaermu/sync-pre-commit-with-uv/internal/uv"
)

var (
	// Set by goreleaser
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const envPrefix = "SYNC_PRE_COMMIT_WITH_UV"

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "sync-pre-commit-with-uv [files...]",
		Short: "Sync pre-commit hook versions and dependencies with uv.lock",
		Long: `sync-pre-commit-with-uv keeps .pre-commit-config.yaml consistent with uv.lock.

Repos are matched against packages by name, with per-repo rules read from the
[tool.sync-pre-commit-with-uv] section of pyproject.toml. Pinned revisions are
set to the locked versions and hook additional_dependencies are filled from
"uv export". The file is only rewritten when something changed.

File arguments passed by pre-commit are ignored.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, v)
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("sync-pre-commit-with-uv %s\n  commit: %s\n  built:  %s\n", version, commit, date))

	flags := cmd.Flags()
	flags.String(config.KeyPyprojectConfig, config.DefaultPyprojectFile, "path to pyproject.toml")
	flags.String(config.KeyPreCommitConfig, "", "path to .pre-commit-config.yaml (default next to pyproject.toml)")
	flags.String(config.KeyUVLock, "", "path to uv.lock (default next to pyproject.toml)")
	flags.String(config.KeyUVBinary, uv.DefaultBinary, "uv executable used to export dependencies")
	flags.Bool(config.KeyDryRun, false, "show what would be done without making changes")
	flags.String(config.KeyLogLevel, "", "log level (debug, info, warn, error) (default warn, info with --dry-run)")
	flags.String(config.KeyLogFormat, config.DefaultLogFormat, "log format (text, json, logfmt)")

	if err := v.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("failed to bind flags: %v", err))
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

func runSync(cmd *cobra.Command, v *viper.Viper) error {
	ctx, cancel := setupSignalHandler(cmd.Context())
	defer cancel()

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := setupLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	exporter := uv.NewShellExporter(cfg.UV.Binary, cfg.ExportDir())
	engine := sync.NewEngine(cfg, exporter, logger, cfg.DryRun)

	if _, err := engine.Run(ctx); err != nil {
		logger.Debug("sync failed", "error", err)
		return err
	}
	return nil
}

func setupLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.New(w, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	logger.Debug("configuration loaded",
		"pyproject", cfg.Paths.Pyproject,
		"pre_commit", cfg.Paths.PreCommit,
		"uv_lock", cfg.Paths.UVLock,
		"uv_binary", cfg.UV.Binary)

	return logger, nil
}

func setupSignalHandler(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
