package utils

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotRegularFile is returned for arguments that exist but are not files.
var ErrNotRegularFile = errors.New("not a regular file")

// ResolveFiles checks every path before any of them is modified. It returns the
// paths in order with duplicates removed.
func ResolveFiles(paths []string) ([]string, error) {
	resolved := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot process %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("cannot process %s: %w", path, ErrNotRegularFile)
		}
		if seen[path] {
			continue
		}
		seen[path] = true
		resolved = append(resolved, path)
	}
	return resolved, nil
}
