package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileExists reports whether the named file or directory exists.
func FileExists(name string) bool {
	_, err := os.Stat(name)
	return !errors.Is(err, fs.ErrNotExist)
}

// MakeDirectory creates dir and its parents with owner-only permissions.
func MakeDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		// a dangling symlink usually means an unmounted volume
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) && errors.Is(err, fs.ErrExist) {
			if link, lerr := os.Readlink(pathErr.Path); lerr == nil {
				err = fmt.Errorf("is symlink %s -> %s mounted?", pathErr.Path, link)
			}
		}
		return fmt.Errorf("failed to create dir %s: %w", dir, err)
	}
	return nil
}

// CleanAndExpandPath expands environment variables and a leading ~ in path
// and cleans the result.
func CleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv("HOME")
		}
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// os.ExpandEnv only understands POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// ResolveHomeDir turns the --home value into a clean absolute path.
func ResolveHomeDir(path string) (string, error) {
	expanded := CleanAndExpandPath(path)
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("invalid home directory %s: %w", path, err)
	}
	return abs, nil
}
