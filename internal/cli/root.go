// Package cli provides the Cobra command structure for flashforge.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/flashforge/internal/logging"
	"github.com/yaklabco/flashforge/pkg/card"
	"github.com/yaklabco/flashforge/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

//nolint:gochecknoinits // Wires strategy descriptions into config templates.
func init() {
	config.DefaultStrategyInfoProvider = strategyInfos
}

func strategyInfos() []config.StrategyInfo {
	strategies := card.Strategies()
	infos := make([]config.StrategyInfo, 0, len(strategies))
	for _, s := range strategies {
		infos = append(infos, config.StrategyInfo{Name: s.String(), Description: s.Description()})
	}
	return infos
}

// NewRootCommand creates the root flashforge command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "flashforge",
		Short: "Turn plain study notes into importable flashcards",
		Long: `flashforge turns plain text, Markdown and HTML notes into flashcards.

A parsing strategy decides how text becomes front/back candidates: line by
line, split at a delimiter, whole verses, cloze deletions, Q/A blocks or
numbered lists. Every candidate is validated before export, duplicates can be
detected and dropped, and passing cards are written as Anki-compatible tab or
CSV import files.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newDedupeCommand())
	rootCmd.AddCommand(newStrategiesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
