/*
Package fstree provides a dead simple file-based database storage backend.
Every key is stored as a file below the base directory, so stored tables can
easily be accessed directly.
*/
package fstree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/safing/tabletext/database/storage"
)

const (
	defaultFileMode = os.FileMode(0o0644)
	defaultDirMode  = os.FileMode(0o0755)
)

// FSTree database storage.
type FSTree struct {
	name     string
	basePath string
}

func init() {
	_ = storage.Register("fstree", NewFSTree)
}

// NewFSTree returns a (new) FSTree database.
func NewFSTree(name, location string) (storage.Interface, error) {
	basePath, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("fstree: failed to validate path %s: %w", location, err)
	}

	file, err := os.Stat(basePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = os.MkdirAll(basePath, defaultDirMode)
		if err != nil {
			return nil, fmt.Errorf("fstree: failed to create directory %s: %w", basePath, err)
		}
	case err != nil:
		return nil, fmt.Errorf("fstree: failed to stat path %s: %w", basePath, err)
	case !file.IsDir():
		return nil, fmt.Errorf("fstree: provided database path (%s) is a file", basePath)
	}

	return &FSTree{
		name:     name,
		basePath: basePath,
	}, nil
}

func (fst *FSTree) buildFilePath(key string) (string, error) {
	if err := storage.ValidKey(key); err != nil {
		return "", err
	}
	dstPath := filepath.Join(fst.basePath, filepath.FromSlash(key)) // Join also calls Clean()
	if !strings.HasPrefix(dstPath, fst.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: compiled path of %s leaves the database", storage.ErrInvalidKey, key)
	}
	return dstPath, nil
}

// Get returns the value stored under key.
func (fst *FSTree) Get(key string) ([]byte, error) {
	dstPath, err := fst.buildFilePath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(dstPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("fstree: failed to read file %s: %w", dstPath, err)
	}
	return data, nil
}

// Exists returns whether an entry with the given key exists.
func (fst *FSTree) Exists(key string) (bool, error) {
	dstPath, err := fst.buildFilePath(key)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(dstPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("fstree: failed to stat %s: %w", dstPath, err)
	default:
		return !info.IsDir(), nil
	}
}

// Keys returns all keys with the given prefix in order.
func (fst *FSTree) Keys(prefix string) ([]string, error) {
	var keys []string

	err := filepath.WalkDir(fst.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}

		rel, err := filepath.Rel(fst.basePath, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fstree: failed to list keys: %w", err)
	}

	sort.Strings(keys)
	return keys, nil
}

// Put stores a value in the database. The file is replaced atomically.
func (fst *FSTree) Put(key string, data []byte) error {
	dstPath, err := fst.buildFilePath(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(dstPath)
	err = os.MkdirAll(dir, defaultDirMode)
	if err != nil {
		return fmt.Errorf("fstree: failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-")
	if err != nil {
		return fmt.Errorf("fstree: could not create file in %s: %w", dir, err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), defaultFileMode)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), dstPath)
	}
	if err != nil {
		return fmt.Errorf("fstree: could not write file %s: %w", dstPath, err)
	}
	return nil
}

// Delete deletes a value from the database.
func (fst *FSTree) Delete(key string) error {
	dstPath, err := fst.buildFilePath(key)
	if err != nil {
		return err
	}

	err = os.Remove(dstPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("fstree: could not delete %s: %w", dstPath, err)
	}
	return nil
}

// Shutdown shuts down the database.
func (fst *FSTree) Shutdown() error {
	return nil
}
