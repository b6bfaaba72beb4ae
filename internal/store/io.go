package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// readFile reads the file at path.
func readFile(path string) ([]byte, error) {
	return os.ReadFile(path) //nolint:gosec // path is confined to the key directory
}

// entryExists reports whether anything (file, directory or dangling symlink)
// occupies path.
func entryExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// isRegularFile follows symlinks, so a link to a regular file counts.
func isRegularFile(dir string, entry fs.DirEntry) (bool, error) {
	if entry.Type().IsRegular() {
		return true, nil
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false, nil
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
