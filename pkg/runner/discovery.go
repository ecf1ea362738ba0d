package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-enry/go-enry/v2"
)

// Discover finds source files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
//
// A path named explicitly is converted whatever its extension; extension
// filtering and vendored-directory skipping apply only while walking
// directories. Exclude globs apply to both.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w := &walker{
		ctx:        ctx,
		opts:       opts,
		workDir:    workDir,
		extensions: lowered(opts.effectiveExtensions()),
		seen:       make(map[string]bool),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		if err := w.visitInput(input); err != nil {
			return nil, err
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

// walker carries the state of one discovery. Files are collected once
// however many inputs reach them.
type walker struct {
	ctx        context.Context //nolint:containedctx // scoped to one Discover call
	opts       Options
	workDir    string
	extensions []string
	seen       map[string]bool
	files      []string
}

func (w *walker) add(file string) {
	if !w.seen[file] {
		w.seen[file] = true
		w.files = append(w.files, file)
	}
}

func (w *walker) visitInput(input string) error {
	abs := input
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(w.workDir, abs)
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}
	if info.IsDir() {
		return w.walk(abs)
	}
	if !matchesAny(w.rel(abs), w.opts.ExcludeGlobs) {
		w.add(abs)
	}
	return nil
}

// walk adds every matching file below root. Hidden entries are skipped,
// and so are vendored directories unless IncludeVendored is set.
func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(file string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}
		if file == root {
			return nil
		}

		rel := w.rel(file)
		hidden := strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || matchesAny(rel, w.opts.ExcludeGlobs) ||
				(!w.opts.IncludeVendored && enry.IsVendor(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(file)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks {
					return nil
				}
				// Walking the target itself keeps WalkDir from looping on the link.
				return w.walk(target)
			}
		}

		if w.wants(file, rel) {
			w.add(file)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// wants applies the extension filter and the include and exclude globs to
// a walked file.
func (w *walker) wants(file, rel string) bool {
	if !slices.Contains(w.extensions, strings.ToLower(filepath.Ext(file))) {
		return false
	}
	if matchesAny(rel, w.opts.ExcludeGlobs) {
		return false
	}
	return len(w.opts.IncludeGlobs) == 0 || matchesAny(rel, w.opts.IncludeGlobs)
}

// rel returns file relative to the working directory in slash form, or the
// file itself when no relative path exists.
func (w *walker) rel(file string) string {
	rel, err := filepath.Rel(w.workDir, file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func lowered(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

// matchesAny matches a slash-separated relative path against doublestar
// patterns, ignoring case like the extension filter does. Patterns without
// a slash also match the base name, so "*.html" excludes HTML files at any
// depth.
func matchesAny(rel string, patterns []string) bool {
	rel = strings.ToLower(rel)
	for _, pattern := range patterns {
		pattern = strings.ToLower(filepath.ToSlash(pattern))
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, err := doublestar.Match(pattern, path.Base(rel)); err == nil && ok {
				return true
			}
		}
	}
	return false
}
