package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
)

// ErrNotADirectory is returned by EnsureDirectory if the path exists, but is not a directory.
var ErrNotADirectory = errors.New("path exists but is not a directory")

// EnsureDirectory ensures that the given directory exists and that is has the given permissions set.
// If a directory is created, also all missing directories up to the required one are created with the given permissions.
func EnsureDirectory(path string, perm os.FileMode) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = os.MkdirAll(path, perm)
		if err != nil {
			return fmt.Errorf("could not create dir %s: %w", path, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to access %s: %w", path, err)
	case !info.IsDir():
		return fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}

	if info.Mode().Perm() != perm && runtime.GOOS != "windows" {
		return os.Chmod(path, perm)
	}
	return nil
}
