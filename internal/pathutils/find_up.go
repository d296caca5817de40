package pathutils

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by [FindUp] when no directory holds the file.
var ErrNotFound = errors.New("file not found in directory tree")

// FindUp returns the absolute path of the file called name in dir or the
// nearest of its parent directories. Directories called name are skipped.
func FindUp(dir, name string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve %s", dir)
	}
	for {
		path := filepath.Join(dir, name)
		fi, err := os.Stat(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return "", errors.Wrapf(err, "failed to stat %s", path)
			}
		} else if !fi.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", errors.Wrap(ErrNotFound, name)
}

// FindUpFromWorkingDir is [FindUp] starting at the current working directory.
func FindUpFromWorkingDir(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get current working directory")
	}
	return FindUp(dir, name)
}
