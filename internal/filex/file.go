// Package filex holds filesystem helpers for the client's data directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDataFile makes sure the directory dir exists (relative paths are
// resolved against the working directory) and returns the absolute path of
// name inside it. Absolute names are returned unchanged after their own
// parent directory is created.
func EnsureDataFile(dir, name string) (string, error) {
	path := name
	if !filepath.IsAbs(name) {
		path = filepath.Join(dir, name)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", path, err)
	}

	parent := filepath.Dir(abs)
	if err := os.MkdirAll(parent, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", parent, err)
	}

	return abs, nil
}
