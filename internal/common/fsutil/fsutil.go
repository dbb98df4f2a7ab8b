package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ExpandHome expands a leading '~' to the user's home directory.
// Forms like ~user are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	rest := path[1:]
	if rest != "" && rest[0] != '/' && rest[0] != os.PathSeparator {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if rest == "" {
		return home, nil
	}
	return filepath.Join(home, rest[1:]), nil
}

// PathExists checks if the given path exists.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}
