package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func startWatch(t *testing.T, path string, calls *atomic.Int32) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, 50*time.Millisecond, func() { calls.Add(1) })
	}()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("File: %v", err)
		}
	})
	// Give the watcher time to register before the test writes.
	time.Sleep(100 * time.Millisecond)
	return cancel
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestFileAtomicRenameFiresOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credential-metadata.json")

	var calls atomic.Int32
	startWatch(t, path, &calls)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return calls.Load() >= 1 })
	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 debounced call, got %d", got)
	}
}

func TestFileIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credential-metadata.json")

	var calls atomic.Int32
	startWatch(t, path, &calls)

	if err := os.WriteFile(filepath.Join(dir, "audit.log"), []byte("x\n"), 0600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("expected no calls for sibling file, got %d", got)
	}
}

func TestFileCreatesMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "meta.json")

	var calls atomic.Int32
	startWatch(t, path, &calls)

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("expected watched dir to exist: %v", err)
	}
}
