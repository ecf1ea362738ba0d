package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/flashforge/pkg/config"
)

type validateFlags struct {
	report        reportFlags
	maxFieldBytes int
}

func newValidateCommand() *cobra.Command {
	var cfg config.Config
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate the cards of an existing export",
		Long: `Read a tab or CSV export, honoring its Anki file headers, and check every
card for empty sides, oversized fields, control characters and invalid UTF-8.

Examples:
  flashforge validate deck.txt
  flashforge validate --format json deck.csv
  cat deck.txt | flashforge validate -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("max-field-bytes") {
				cfg.Validation.MaxFieldBytes = flags.maxFieldBytes
			}
			return runCheckExport(cmd, args[0], &cfg, &flags.report)
		},
	}

	cmd.Flags().IntVar(&flags.maxFieldBytes, "max-field-bytes", 0, "largest accepted field in bytes")
	addReportFlags(cmd, &flags.report)

	return cmd
}

// runCheckExport validates an export and reports it; cliCfg decides
// whether duplicates are looked for.
func runCheckExport(cmd *cobra.Command, path string, cliCfg *config.Config, flags *reportFlags) error {
	ctx := commandContext(cmd)

	cfg, workDir, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	rep, err := newReporter(cmd, flags, cfg, workDir)
	if err != nil {
		return err
	}

	result, err := checkExport(ctx, path, cfg, cmd.InOrStdin())
	if err != nil {
		return err
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return err
	}

	return errorForExitCode(ExitCodeFromResult(result, false))
}
