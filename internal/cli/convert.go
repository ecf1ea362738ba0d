package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/flashforge/internal/logging"
	"github.com/yaklabco/flashforge/pkg/config"
	"github.com/yaklabco/flashforge/pkg/export"
	"github.com/yaklabco/flashforge/pkg/fsutil"
	"github.com/yaklabco/flashforge/pkg/reporter"
	"github.com/yaklabco/flashforge/pkg/runner"
	"github.com/yaklabco/flashforge/pkg/source"
)

type convertFlags struct {
	report          reportFlags
	exportFormat    string
	maxFieldBytes   int
	includeVendored bool
	watch           bool
}

func newConvertCommand() *cobra.Command {
	var cfg config.Config
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [paths...|-]",
		Short: "Convert notes into flashcards",
		Long:  convertLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, &cfg, flags)
		},
	}

	addConvertFlags(cmd, &cfg, flags)

	return cmd
}

const convertLongDescription = `Parse notes into card candidates, validate them and export the passing cards.

By default, converts every .txt, .text, .md, .markdown, .html and .htm file
in the current directory and subdirectories. Pass "-" to read standard input.
Nothing is written unless --output is given; "--output -" writes the export
to standard output and the report to standard error.

Examples:
  flashforge convert notes.txt                          # Report only
  flashforge convert --strategy qa -o deck.txt notes/  # Export a directory
  flashforge convert --strategy cloze --html -o - -    # Stdin to stdout
  flashforge convert --dedupe --dry-run -o deck.csv    # Preview an export
  flashforge convert --watch -o deck.txt notes.md      # Re-export on change`

// convertSession carries everything one conversion pass needs, so watch
// mode can repeat it.
type convertSession struct {
	cmd       *cobra.Command
	cfg       *config.Config
	args      []string
	workDir   string
	runOpts   runner.Options
	converter *runner.Converter
	runner    *runner.Runner
	exporter  *export.Writer
	reporter  reporter.Reporter

	// outputPath is the absolute export path, or "" for none or stdout.
	outputPath string
}

func runConvert(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *convertFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if cmd.Flags().Changed("export-format") {
		cliCfg.Export.Format = config.ExportFormat(flags.exportFormat)
	}
	if cmd.Flags().Changed("max-field-bytes") {
		cliCfg.Validation.MaxFieldBytes = flags.maxFieldBytes
	}

	readStdin := slices.Contains(args, source.StdinPath)
	if readStdin && len(args) > 1 {
		return fmt.Errorf("%w: %q cannot be combined with other paths", ErrUsage, source.StdinPath)
	}
	if readStdin && flags.watch {
		return fmt.Errorf("%w: --watch needs file paths, not standard input", ErrUsage)
	}

	cfg, workDir, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldStrategy, cfg.Strategy,
		logging.FieldExportFormat, cfg.Export.Format,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	session, err := newConvertSession(cmd, args, cfg, workDir, flags)
	if err != nil {
		return err
	}

	var result *runner.Result
	if readStdin {
		result, err = session.convertStdin(ctx)
	} else {
		result, err = session.once(ctx)
	}
	if err != nil {
		return err
	}

	if flags.watch {
		return session.watch(ctx)
	}

	return errorForExitCode(ExitCodeFromResult(result, cfg.Strict))
}

func newConvertSession(cmd *cobra.Command, args []string, cfg *config.Config, workDir string, flags *convertFlags) (*convertSession, error) {
	converter, err := runner.NewConverter(runner.ConverterOptionsFromConfig(cfg))
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	exporter, err := export.New(export.Options{
		Format: export.Format(cfg.Export.Format),
		HTML:   cfg.Export.HTML,
		Deck:   cfg.Export.Deck,
		Tags:   cfg.Export.Tags,
		GUID:   cfg.Export.GUID,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	rep, err := newReporter(cmd, &flags.report, cfg, workDir)
	if err != nil {
		return nil, err
	}

	session := &convertSession{
		cmd:       cmd,
		cfg:       cfg,
		args:      args,
		workDir:   workDir,
		converter: converter,
		runner:    runner.New(converter),
		exporter:  exporter,
		reporter:  rep,
		runOpts: runner.Options{
			Paths:           args,
			WorkingDir:      workDir,
			Extensions:      runner.DefaultExtensions(),
			ExcludeGlobs:    cfg.Ignore,
			IncludeVendored: flags.includeVendored,
			Jobs:            cfg.Jobs,
		},
	}

	if cfg.Output != "" && cfg.Output != "-" {
		session.outputPath = cfg.Output
		if !filepath.IsAbs(session.outputPath) {
			session.outputPath = filepath.Join(workDir, session.outputPath)
		}
		session.outputPath = filepath.Clean(session.outputPath)
	}

	return session, nil
}

// discover lists the input files, leaving out the export and its backup.
func (s *convertSession) discover(ctx context.Context) ([]string, error) {
	files, err := runner.Discover(ctx, s.runOpts)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	if s.outputPath == "" {
		return files, nil
	}

	backup := fsutil.BackupPath(s.outputPath, backupConfig(s.cfg).Mode)
	return slices.DeleteFunc(files, func(file string) bool {
		return file == s.outputPath || file == backup
	}), nil
}

// once runs one full pass over the input paths: convert, report, export.
func (s *convertSession) once(ctx context.Context) (*runner.Result, error) {
	logger := logging.FromContext(ctx)

	files, err := s.discover(ctx)
	if err != nil {
		return nil, err
	}

	logger.Debug("starting conversion",
		logging.FieldPaths, s.runOpts.Paths,
		logging.FieldWorkingDir, s.workDir,
		logging.FieldFilesDiscovered, len(files),
	)

	result, err := s.runner.RunFiles(ctx, files, s.runOpts.Jobs)
	if err != nil {
		return nil, errors.Join(errors.New("conversion failed"), err)
	}

	return result, s.finish(ctx, result)
}

// convertStdin converts standard input as a single document.
func (s *convertSession) convertStdin(ctx context.Context) (*runner.Result, error) {
	conv, err := s.converter.ConvertReader(ctx, source.StdinPath, s.cmd.InOrStdin())
	result := runner.Single(source.StdinPath, conv, err)
	return result, s.finish(ctx, result)
}

// finish reports the result and writes the export.
func (s *convertSession) finish(ctx context.Context, result *runner.Result) error {
	logger := logging.FromContext(ctx)

	if _, err := s.reporter.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("conversion finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldCandidates, result.Stats.Candidates,
		logging.FieldValid, result.Stats.Valid,
		logging.FieldInvalid, result.Stats.Invalid,
		logging.FieldDuplicates, result.Stats.DuplicateGroups,
	)

	return s.export(ctx, result)
}

// export writes the exportable cards of result to the configured output.
func (s *convertSession) export(ctx context.Context, result *runner.Result) error {
	logger := logging.FromContext(ctx)
	cards := result.Exportable()

	switch {
	case s.cfg.Output == "":
		return nil
	case s.cfg.DryRun:
		logger.Info("dry run; export not written",
			logging.FieldOutput, s.cfg.Output,
			logging.FieldExported, len(cards),
		)
		return nil
	case s.cfg.Output == "-":
		if _, err := s.exporter.Write(s.cmd.OutOrStdout(), cards); err != nil {
			return errors.Join(ErrExport, err)
		}
		return nil
	}

	written, err := s.exporter.WriteFile(ctx, s.outputPath, cards, backupConfig(s.cfg))
	if err != nil {
		return errors.Join(ErrExport, err)
	}

	if written.BackupPath != "" {
		logger.Debug("backed up previous export", logging.FieldPath, written.BackupPath)
	}
	logger.Info("exported cards",
		logging.FieldOutput, s.cfg.Output,
		logging.FieldExported, written.Exported,
	)
	return nil
}

func addConvertFlags(cmd *cobra.Command, cfg *config.Config, flags *convertFlags) {
	cmd.Flags().StringVarP(&cfg.Strategy, "strategy", "s", "",
		"parsing strategy: line_by_line, delimiter, verse, cloze, qa, numbered")
	cmd.Flags().StringVar(&cfg.Delimiter.Token, "delimiter", "", "delimiter between front and back (delimiter strategy)")
	cmd.Flags().StringVar(&cfg.Cloze.Placeholder, "placeholder", "", "text that replaces the hidden span (cloze strategy)")
	cmd.Flags().StringVar(&cfg.Cloze.Open, "cloze-open", "", "opening marker of a cloze span")
	cmd.Flags().StringVar(&cfg.Cloze.Close, "cloze-close", "", "closing marker of a cloze span")
	cmd.Flags().BoolVar(&cfg.Verse.SplitFirstLine, "split-first-line", false,
		"put the first line of each verse on the front")
	cmd.Flags().IntVar(&flags.maxFieldBytes, "max-field-bytes", 0, "largest accepted field in bytes")

	addReportFlags(cmd, &flags.report)

	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", `export file ("-" for standard output)`)
	cmd.Flags().StringVar(&flags.exportFormat, "export-format", "tab", "export layout: tab, csv")
	cmd.Flags().BoolVar(&cfg.Export.HTML, "html", false, "render fields from Markdown to HTML")
	cmd.Flags().StringVar(&cfg.Export.Deck, "deck", "", "deck name written to the export header")
	cmd.Flags().StringSliceVar(&cfg.Export.Tags, "tags", nil, "tags applied to every exported card")
	cmd.Flags().BoolVar(&cfg.Export.GUID, "guid", false, "add a stable GUID column")
	cmd.Flags().BoolVar(&cfg.Dedupe.Enabled, "dedupe", false, "drop duplicate cards before export")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "do not back up an existing export")

	cmd.Flags().StringVar(&cfg.Input.Encoding, "encoding", "", "input charset, e.g. windows-1252 (default UTF-8)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "convert files in vendored directories")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "report without writing the export")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "fail when input lines are skipped")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "convert again whenever an input changes")
}
