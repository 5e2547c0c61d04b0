// Package osutil contains small filesystem helpers for config file handling.
package osutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileExists returns whether or not a file exists on the filesystem. We
// consider any error returned by os.Stat to indicate that the file doesn't
// exist. We could be specific and use os.IsNotExist(err), but most other
// errors also indicate that the file isn't there (or isn't available) so we'll
// just catch them all.
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// NormalizeFilePath expands a leading ~ to the home directory and makes path
// absolute. An empty path stays empty.
func NormalizeFilePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding ~ in %q: %w", path, err)
		}
		path = filepath.Join(home, path[1:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("making %q absolute: %w", path, err)
	}
	return abs, nil
}
