package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/flashforge/internal/logging"
	"github.com/yaklabco/flashforge/pkg/config"
	"github.com/yaklabco/flashforge/pkg/export"
	"github.com/yaklabco/flashforge/pkg/runner"
	"github.com/yaklabco/flashforge/pkg/source"
)

// readExport reads an existing export file, or stdin for "-". A .csv path
// without a #separator header is read as comma separated.
func readExport(ctx context.Context, path string, stdin io.Reader) (*export.Document, error) {
	fallback := export.FormatTab
	if strings.EqualFold(filepath.Ext(path), export.FormatCSV.Extension()) {
		fallback = export.FormatCSV
	}

	in := stdin
	if path != source.StdinPath {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open export: %w", err)
		}
		defer f.Close()
		in = f
	}

	doc, err := export.Read(in, fallback)
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", path, err)
	}

	logging.FromContext(ctx).Debug("read export",
		logging.FieldPath, path,
		logging.FieldExportFormat, doc.Headers.Format,
		logging.FieldCandidates, len(doc.Cards),
	)
	return doc, nil
}

// checkExport validates the cards of an existing export with cfg.
func checkExport(ctx context.Context, path string, cfg *config.Config, stdin io.Reader) (*runner.Result, error) {
	converter, err := runner.NewConverter(runner.ConverterOptionsFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	doc, err := readExport(ctx, path, stdin)
	if err != nil {
		return runner.Single(path, nil, err), nil
	}

	return runner.Single(path, converter.ConvertCandidates(path, doc.Cards), nil), nil
}
