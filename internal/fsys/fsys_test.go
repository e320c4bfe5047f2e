package fsys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LFroesch/pathfinder/internal/entry"
)

func TestStat(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "file.txt")
	os.WriteFile(filePath, []byte("x"), 0644)
	dirPath := filepath.Join(tempDir, "dir")
	os.Mkdir(dirPath, 0755)

	fs := New()

	ft, err := fs.Stat(filePath)
	if err != nil {
		t.Fatalf("Stat(file) failed: %v", err)
	}
	if !ft.IsFile() || ft.IsDir() {
		t.Errorf("Stat(file) = %v, want file type", ft)
	}

	dt, err := fs.Stat(dirPath)
	if err != nil {
		t.Fatalf("Stat(dir) failed: %v", err)
	}
	if !dt.IsDir() {
		t.Errorf("Stat(dir) = %v, want directory type", dt)
	}

	// Missing paths report the stat error
	if _, err := fs.Stat(filepath.Join(tempDir, "nope")); err == nil {
		t.Error("Stat on a missing path should fail")
	}
}

func TestStatSymlink(t *testing.T) {
	tempDir := t.TempDir()
	dirPath := filepath.Join(tempDir, "real")
	os.Mkdir(dirPath, 0755)
	linkPath := filepath.Join(tempDir, "link")
	if err := os.Symlink(dirPath, linkPath); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	lt, err := New().Stat(linkPath)
	if err != nil {
		t.Fatalf("Stat(link) failed: %v", err)
	}
	if !lt.IsSymlink() {
		t.Error("symlink bit missing")
	}
	if !lt.IsDir() {
		t.Error("symlink to directory should carry the dir bit")
	}

	// Broken symlink keeps only the symlink bit
	brokenPath := filepath.Join(tempDir, "broken")
	os.Symlink(filepath.Join(tempDir, "gone"), brokenPath)
	bt, err := New().Stat(brokenPath)
	if err != nil {
		t.Fatalf("Stat(broken link) failed: %v", err)
	}
	if !bt.IsSymlink() || bt.IsDir() || bt.IsFile() {
		t.Errorf("broken symlink type = %v, want bare symlink", bt)
	}
}

func TestReadDirectory(t *testing.T) {
	tempDir := t.TempDir()
	os.WriteFile(filepath.Join(tempDir, "b.txt"), []byte("b"), 0644)
	os.WriteFile(filepath.Join(tempDir, "a.txt"), []byte("a"), 0644)
	os.Mkdir(filepath.Join(tempDir, "sub"), 0755)

	items, err := New().ReadDirectory(tempDir)
	if err != nil {
		t.Fatalf("ReadDirectory failed: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("ReadDirectory returned %d entries, want 3", len(items))
	}
	byName := map[string]entry.Entry{}
	for _, it := range items {
		byName[it.Name] = it
	}
	if !byName["sub"].Type.IsDir() {
		t.Error("sub should be a directory")
	}
	if !byName["a.txt"].Type.IsFile() {
		t.Error("a.txt should be a file")
	}
}

func TestReadDirectoryMissing(t *testing.T) {
	if _, err := New().ReadDirectory(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("ReadDirectory on a missing path should fail")
	}
}

func TestCreateDirectory(t *testing.T) {
	tempDir := t.TempDir()
	fs := New()

	// Nested creation fills in missing parents
	target := filepath.Join(tempDir, "a", "b", "c")
	if err := fs.CreateDirectory(target); err != nil {
		t.Fatalf("CreateDirectory failed: %v", err)
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		t.Error("directory was not created")
	}

	// Test creating directory that already exists
	if err := fs.CreateDirectory(target); err == nil {
		t.Error("Expected error when creating existing directory")
	}

	// A file squatting on the name is reported distinctly
	filePath := filepath.Join(tempDir, "occupied")
	os.WriteFile(filePath, []byte("x"), 0644)
	if err := fs.CreateDirectory(filePath); err == nil {
		t.Error("Expected error when a file occupies the path")
	}
}

func TestRename(t *testing.T) {
	tempDir := t.TempDir()
	fs := New()

	oldPath := filepath.Join(tempDir, "oldname.txt")
	os.WriteFile(oldPath, []byte("test content"), 0644)

	// Test successful rename
	newPath := filepath.Join(tempDir, "newname.txt")
	if err := fs.Rename(oldPath, newPath); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if _, err := os.Stat(newPath); os.IsNotExist(err) {
		t.Error("Renamed file does not exist")
	}
	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("Old file still exists after rename")
	}

	// Test renaming onto an existing file
	anotherPath := filepath.Join(tempDir, "another.txt")
	os.WriteFile(anotherPath, []byte("another"), 0644)
	if err := fs.Rename(newPath, anotherPath); err == nil {
		t.Error("Expected error when renaming to existing file")
	}

	// Renaming a path onto itself is a no-op
	if err := fs.Rename(newPath, newPath); err != nil {
		t.Errorf("self-rename should be a no-op, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	tempDir := t.TempDir()
	fs := New()

	filePath := filepath.Join(tempDir, "file.txt")
	os.WriteFile(filePath, []byte("x"), 0644)
	if err := fs.Delete(filePath, false); err != nil {
		t.Fatalf("Delete(file) failed: %v", err)
	}
	if _, err := os.Stat(filePath); !os.IsNotExist(err) {
		t.Error("file still exists after delete")
	}

	// Non-recursive delete refuses a populated directory
	dirPath := filepath.Join(tempDir, "dir")
	os.Mkdir(dirPath, 0755)
	os.WriteFile(filepath.Join(dirPath, "inner.txt"), []byte("y"), 0644)
	if err := fs.Delete(dirPath, false); err == nil {
		t.Error("Expected error deleting a non-empty directory without recursive")
	}

	// Recursive delete removes the whole tree
	if err := fs.Delete(dirPath, true); err != nil {
		t.Fatalf("Delete(dir, recursive) failed: %v", err)
	}
	if _, err := os.Stat(dirPath); !os.IsNotExist(err) {
		t.Error("directory still exists after recursive delete")
	}
}
