// Package paths resolves user-supplied file paths against a base directory
// and manages the scratch directory for intermediate artifacts.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// Resolve turns path into an absolute path. Relative paths are joined against
// baseDir first. The resolved path must exist on disk; a missing file is an
// error so the run fails before any encoding starts.
func Resolve(baseDir, path string) (string, error) {
	p := path
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("file %q not found", abs)
	}
	return abs, nil
}

// ResolveAll resolves every path in order, failing on the first missing file.
func ResolveAll(baseDir string, paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := Resolve(baseDir, p)
		if err != nil {
			return nil, err
		}
		out = append(out, abs)
	}
	return out, nil
}

// EnsureScratchDir creates the scratch directory under baseDir if it does not
// exist and returns its absolute path. The directory is never removed
// automatically; intermediates stay around for inspection after a run.
func EnsureScratchDir(baseDir, name string) (string, error) {
	dir := filepath.Join(baseDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create scratch directory %q: %w", dir, err)
	}
	return filepath.Abs(dir)
}
