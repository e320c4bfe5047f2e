package fsys

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newStartedWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	t.Cleanup(w.Stop)
	if err := w.SetDir(dir); err != nil {
		t.Fatalf("SetDir(%s) failed: %v", dir, err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	// Give the watch a moment to attach before generating events
	time.Sleep(100 * time.Millisecond)
	return w
}

func waitRefresh(t *testing.T, w *Watcher, timeout time.Duration) string {
	t.Helper()
	select {
	case dir := <-w.Refresh():
		return dir
	case <-time.After(timeout):
		t.Fatal("timed out waiting for a refresh signal")
		return ""
	}
}

func wantQuiet(t *testing.T, w *Watcher, window time.Duration) {
	t.Helper()
	select {
	case dir := <-w.Refresh():
		t.Fatalf("unexpected refresh signal for %s", dir)
	case <-time.After(window):
	}
}

func TestWatcherSignalsOnCreate(t *testing.T) {
	tempDir := t.TempDir()
	w := newStartedWatcher(t, tempDir)

	if err := os.WriteFile(filepath.Join(tempDir, "new.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if got := waitRefresh(t, w, 3*time.Second); got != tempDir {
		t.Errorf("refresh = %q, want %q", got, tempDir)
	}
}

func TestWatcherCoalescesBurst(t *testing.T) {
	tempDir := t.TempDir()
	w := newStartedWatcher(t, tempDir)

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		if err := os.WriteFile(filepath.Join(tempDir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
	}

	waitRefresh(t, w, 3*time.Second)
	// The burst lands well inside one debounce window
	wantQuiet(t, w, 3*debounceDelay)
}

func TestWatcherIgnoresContentWrites(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "existing.txt")
	if err := os.WriteFile(filePath, []byte("before"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	w := newStartedWatcher(t, tempDir)

	if err := os.WriteFile(filePath, []byte("after"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// Content changes do not alter the name set, so no refresh
	wantQuiet(t, w, 3*debounceDelay)
}

func TestWatcherFollowsDirectoryChange(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	w := newStartedWatcher(t, first)

	if err := w.SetDir(second); err != nil {
		t.Fatalf("SetDir(second) failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(first, "old.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("create in first failed: %v", err)
	}
	wantQuiet(t, w, 3*debounceDelay)

	if err := os.WriteFile(filepath.Join(second, "new.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("create in second failed: %v", err)
	}
	if got := waitRefresh(t, w, 3*time.Second); got != second {
		t.Errorf("refresh = %q, want %q", got, second)
	}
}

func TestWatcherSetDirValidatesTarget(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "plain.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	t.Cleanup(w.Stop)

	if err := w.SetDir(filePath); err == nil {
		t.Error("SetDir on a file should fail")
	}
	if err := w.SetDir(filepath.Join(tempDir, "missing")); err == nil {
		t.Error("SetDir on a missing path should fail")
	}
	if err := w.SetDir(tempDir); err != nil {
		t.Errorf("SetDir on a directory failed: %v", err)
	}
	if err := w.SetDir(tempDir); err != nil {
		t.Errorf("SetDir on the same directory should be a no-op, got %v", err)
	}
}

func TestWatcherStartStop(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if w.IsRunning() {
		t.Error("watcher reports running before Start")
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !w.IsRunning() {
		t.Error("watcher not running after Start")
	}
	if err := w.Start(); err == nil {
		t.Error("second Start should fail")
	}
	w.Stop()
	if w.IsRunning() {
		t.Error("watcher still running after Stop")
	}
	w.Stop()
}
