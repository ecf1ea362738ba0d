package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/flashforge/internal/logging"
	"github.com/yaklabco/flashforge/pkg/fsutil"
	"github.com/yaklabco/flashforge/pkg/source"
)

// watchDebounce is how long to wait for more changes before converting again.
const watchDebounce = 300 * time.Millisecond

// snapshot records the inputs of the last pass.
type snapshot map[string]*fsutil.FileInfo

// takeSnapshot records files. Files that vanished since discovery are left
// out, so they count as changed if they come back.
func takeSnapshot(ctx context.Context, files []string) snapshot {
	snap := make(snapshot, len(files))
	for _, file := range files {
		_, info, err := fsutil.ReadFile(ctx, file)
		if err != nil {
			continue
		}
		snap[file] = info
	}
	return snap
}

// changed reports whether files differ from the snapshot: a file was added
// or removed, or its content changed.
func (snap snapshot) changed(ctx context.Context, files []string) (bool, error) {
	if len(files) != len(snap) {
		return true, nil
	}
	for _, file := range files {
		info, ok := snap[file]
		if !ok {
			return true, nil
		}
		changed, err := fsutil.Changed(ctx, info)
		if err != nil {
			return false, fmt.Errorf("check %s: %w", file, err)
		}
		if changed {
			return true, nil
		}
	}
	return false, nil
}

// watchRoots returns the directories to watch for the given input paths.
func watchRoots(paths []string, workDir string) []string {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var roots []string
	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err == nil && !info.IsDir() {
			abs = filepath.Dir(abs)
		}
		if !slices.Contains(roots, abs) {
			roots = append(roots, abs)
		}
	}
	return roots
}

// isSourceFile reports whether path has an input extension.
func isSourceFile(path string) bool {
	return slices.Contains(source.Extensions(), strings.ToLower(filepath.Ext(path)))
}

// addWatches watches root and its subdirectories, skipping hidden ones.
func addWatches(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// watch converts again whenever an input changes, until ctx is cancelled.
func (s *convertSession) watch(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	roots := watchRoots(s.args, s.workDir)
	for _, root := range roots {
		if err := addWatches(fsw, root); err != nil {
			return err
		}
	}

	files, err := s.discover(ctx)
	if err != nil {
		return err
	}
	snap := takeSnapshot(ctx, files)

	logger.Info("watching for changes", logging.FieldPaths, roots, logging.FieldFiles, len(snap))

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addWatches(fsw, event.Name); err != nil {
						logger.Warn("failed to watch directory", logging.FieldPath, event.Name, logging.FieldError, err)
					}
					continue
				}
			}
			if !s.relevant(event.Name) {
				continue
			}
			logger.Debug("input event", logging.FieldPath, event.Name, logging.FieldKind, event.Op.String())
			debounce.Reset(watchDebounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-debounce.C:
			files, err := s.discover(ctx)
			if err != nil {
				logger.Warn("discovery failed", logging.FieldError, err)
				continue
			}
			changed, err := snap.changed(ctx, files)
			if err != nil {
				logger.Warn("change check failed", logging.FieldError, err)
			}
			if !changed && err == nil {
				continue
			}

			logger.Info("inputs changed; converting again", logging.FieldFiles, len(files))
			if _, err := s.once(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("conversion failed", logging.FieldError, err)
			}
			snap = takeSnapshot(ctx, files)
		}
	}
}

// relevant reports whether an event path can affect the export.
func (s *convertSession) relevant(path string) bool {
	path = filepath.Clean(path)
	if s.outputPath != "" {
		if path == s.outputPath || path == fsutil.BackupPath(s.outputPath, backupConfig(s.cfg).Mode) {
			return false
		}
	}
	return isSourceFile(path)
}
