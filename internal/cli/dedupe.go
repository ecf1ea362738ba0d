package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/flashforge/pkg/config"
)

type dedupeFlags struct {
	report    reportFlags
	threshold float64
	minLength int
}

func newDedupeCommand() *cobra.Command {
	var cfg config.Config
	flags := &dedupeFlags{}

	cmd := &cobra.Command{
		Use:   "dedupe <file>",
		Short: "Find duplicate cards in an existing export",
		Long: `Read a tab or CSV export and report groups of cards that look like copies:
identical fronts, reversed pairs, similar fronts and fronts contained in
other fronts. Nothing is rewritten; re-run convert with --dedupe to drop
the suggested copies.

Examples:
  flashforge dedupe deck.txt
  flashforge dedupe --threshold 0.9 --format json deck.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Dedupe.Enabled = true
			if cmd.Flags().Changed("threshold") {
				cfg.Dedupe.Threshold = flags.threshold
			}
			if cmd.Flags().Changed("min-substring-length") {
				cfg.Dedupe.MinSubstringLength = flags.minLength
			}
			return runCheckExport(cmd, args[0], &cfg, &flags.report)
		},
	}

	cmd.Flags().Float64Var(&flags.threshold, "threshold", config.DefaultDedupeThreshold,
		"lowest front similarity reported as similar, in (0, 1]")
	cmd.Flags().IntVar(&flags.minLength, "min-substring-length", config.DefaultMinSubstringLength,
		"fronts must be longer than this to be checked for containment")
	addReportFlags(cmd, &flags.report)

	return cmd
}
