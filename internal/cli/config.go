package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/flashforge/internal/configloader"
	"github.com/yaklabco/flashforge/internal/logging"
	"github.com/yaklabco/flashforge/pkg/config"
	"github.com/yaklabco/flashforge/pkg/fsutil"
	"github.com/yaklabco/flashforge/pkg/reporter"
)

// commandContext returns the command's context with the default logger attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// loadConfig merges every configuration layer with the flag values in cliCfg.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, workDir, nil
}

// reportFlags are the output options shared by every command that reports.
type reportFlags struct {
	format       string
	noFront      bool
	compact      bool
	cards        bool
	summaryOrder string
}

func addReportFlags(cmd *cobra.Command, flags *reportFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "report format: "+strings.Join(reporter.FormatNames(), ", "))
	cmd.Flags().BoolVar(&flags.noFront, "no-front", false, "hide the card front under each problem")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.cards, "cards", false, "list every card with its verdict (json format)")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "kinds",
		"order of tables in summary output: kinds, files")
}

// newReporter builds a reporter writing to out.
func newReporter(cmd *cobra.Command, flags *reportFlags, cfg *config.Config, workDir string) (reporter.Reporter, error) {
	format := flags.format
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		format = string(cfg.Format)
	}
	parsed, err := reporter.ParseFormat(format)
	if err != nil {
		return nil, errors.Join(ErrUsage, err)
	}

	order := reporter.SummaryOrder(flags.summaryOrder)
	if order != reporter.SummaryOrderKinds && order != reporter.SummaryOrderFiles {
		return nil, fmt.Errorf("%w: unknown summary order %q", ErrUsage, flags.summaryOrder)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	// The export owns stdout when it is written there.
	out := cmd.OutOrStdout()
	if cfg.Output == "-" {
		out = cmd.ErrOrStderr()
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       out,
		ErrorWriter:  cmd.ErrOrStderr(),
		Format:       parsed,
		Color:        colorMode,
		ShowFront:    !flags.noFront,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		IncludeCards: flags.cards,
		SummaryOrder: order,
		WorkingDir:   workDir,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

// backupConfig resolves backup settings for overwriting exports.
func backupConfig(cfg *config.Config) fsutil.BackupConfig {
	mode := fsutil.BackupMode(cfg.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    mode,
	}
}
