package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/flashforge/internal/logging"
)

// Runner converts many files with one Converter.
type Runner struct {
	Converter *Converter
}

// New returns a Runner backed by converter.
func New(converter *Converter) *Runner {
	return &Runner{Converter: converter}
}

// Run discovers files under opts.Paths and converts them on opts.Jobs
// workers. Outcomes are reported in discovery order whatever order the
// workers finish in.
//
// A file that cannot be read is recorded on its FileOutcome and does not
// stop the run. Cancelling ctx stops the run and returns what finished.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	return r.RunFiles(ctx, files, opts.Jobs)
}

// job is one file and the slot its outcome goes to.
type job struct {
	slot int
	path string
}

// RunFiles converts an explicit list of files without discovery.
func (r *Runner) RunFiles(ctx context.Context, files []string, jobs int) (*Result, error) {
	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("converting files",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs,
	)

	// Each worker writes only the slots it was handed, so no locking is needed.
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))
	queue := make(chan job)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				if ctx.Err() != nil {
					continue
				}
				outcomes[j.slot] = r.convert(ctx, j.path)
				done[j.slot] = true
			}
		}()
	}

feed:
	for slot, path := range files {
		select {
		case <-ctx.Done():
			break feed
		case queue <- job{slot: slot, path: path}:
		}
	}
	close(queue)
	wg.Wait()

	for slot, outcome := range outcomes {
		if done[slot] {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// convert runs one file through the converter with a logger scoped to it.
func (r *Runner) convert(ctx context.Context, path string) FileOutcome {
	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)

	outcome := FileOutcome{Path: path}
	outcome.Conversion, outcome.Error = r.Converter.ConvertFile(ctx, path)

	switch {
	case outcome.Error != nil:
		logger.Debug("conversion failed", logging.FieldError, outcome.Error)
	case outcome.Conversion != nil:
		logger.Debug("converted",
			logging.FieldCandidates, outcome.Conversion.Candidates(),
			logging.FieldInvalid, outcome.Conversion.Invalid(),
			logging.FieldDiagnostics, len(outcome.Conversion.Diagnostics),
		)
	}
	return outcome
}
