package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// appName names the system and user config directories.
const appName = "flashforge"

// ConfigPaths holds the config files found for one run. Empty means none.
type ConfigPaths struct {
	System   string // /etc/flashforge/config.yaml or %ProgramData%\flashforge
	User     string // $XDG_CONFIG_HOME/flashforge/config.yaml
	Project  string // nearest .flashforge.{yml,yaml,toml} at or above the working dir
	Explicit string // --config
}

// Names searched for, in order of preference.
//
//nolint:gochecknoglobals // read-only lookup tables
var (
	dirConfigFiles     = []string{"config.yaml", "config.yml", "config.toml"}
	projectConfigFiles = []string{
		".flashforge.yml", ".flashforge.yaml", ".flashforge.toml",
		"flashforge.yml", "flashforge.yaml", "flashforge.toml",
	}
	vcsRootMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths looks for system, user and project config files. Missing
// files are not errors.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	paths := &ConfigPaths{
		System: firstFile(systemConfigDir(), dirConfigFiles),
	}
	if dir := userConfigDir(); dir != "" {
		paths.User = firstFile(dir, dirConfigFiles)
	}

	project, err := findProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = project

	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, appName)
}

// userConfigDir honors XDG_CONFIG_HOME and returns "" without a home directory.
func userConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// findProjectConfig walks upward from startDir and returns the first
// project config file. The walk ends at a VCS root, the home directory or
// the filesystem root, whichever comes first.
func findProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if found := firstFile(dir, projectConfigFiles); found != "" {
			return found, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || hasDir(dir, vcsRootMarkers) {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// hasDir reports whether dir contains any of the named subdirectories.
func hasDir(dir string, names []string) bool {
	for _, name := range names {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
