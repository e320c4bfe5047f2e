package fsys

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LFroesch/pathfinder/internal/entry"
)

// FS backs the session's filesystem contract with the os package.
type FS struct{}

// New returns the os-backed filesystem.
func New() *FS {
	return &FS{}
}

// Stat resolves the entry type at path. Symlinks carry the symlink bit
// plus the bits of their target; a broken symlink is just a symlink.
func (*FS) Stat(path string) (entry.Type, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return entry.Unknown, err
	}
	return typeOf(path, info), nil
}

// ReadDirectory lists the names and types of a directory's children.
func (*FS) ReadDirectory(path string) ([]entry.Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	items := make([]entry.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		full := filepath.Join(path, de.Name())
		info, err := os.Lstat(full)
		if err != nil {
			// Entry vanished between ReadDir and Lstat
			continue
		}
		items = append(items, entry.New(de.Name(), typeOf(full, info)))
	}
	return items, nil
}

// CreateDirectory creates the directory at path, including any missing
// parents.
func (*FS) CreateDirectory(path string) error {
	if fi, err := os.Stat(path); err == nil {
		if fi.IsDir() {
			return fmt.Errorf("directory already exists: %s", filepath.Base(path))
		}
		return fmt.Errorf("a file with that name already exists: %s", filepath.Base(path))
	}
	return os.MkdirAll(path, 0755)
}

// Rename moves oldPath to newPath, refusing to overwrite.
func (*FS) Rename(oldPath, newPath string) error {
	if oldPath == newPath {
		return nil
	}
	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("target already exists: %s", filepath.Base(newPath))
	}
	return os.Rename(oldPath, newPath)
}

// Delete removes the file or, when recursive is set, the directory tree
// at path.
func (*FS) Delete(path string, recursive bool) error {
	if recursive {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// typeOf maps FileInfo to the entry type bitmask, following symlinks for
// their target bits.
func typeOf(path string, info os.FileInfo) entry.Type {
	if info.Mode()&os.ModeSymlink != 0 {
		t := entry.Symlink
		if target, err := os.Stat(path); err == nil {
			if target.IsDir() {
				t |= entry.Dir
			} else {
				t |= entry.File
			}
		}
		return t
	}
	if info.IsDir() {
		return entry.Dir
	}
	if info.Mode().IsRegular() {
		return entry.File
	}
	return entry.Unknown
}
