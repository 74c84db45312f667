package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func waitForEvent(t *testing.T, events <-chan struct{}, timeout time.Duration) bool {
	t.Helper()
	select {
	case _, ok := <-events:
		return ok
	case <-time.After(timeout):
		return false
	}
}

func TestWatcherSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(`[{"id":1,"name":"A"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	if !waitForEvent(t, w.Events(), 3*time.Second) {
		t.Fatal("no event after writing the watched file")
	}
}

func TestWatcherSignalsOnRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	// Replace the file the way the store's atomic save does.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(`[{"id":1,"name":"A"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	if !waitForEvent(t, w.Events(), 3*time.Second) {
		t.Fatal("no event after renaming over the watched file")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Events():
		t.Fatal("got an event for a sibling file")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherSignalsForFileCreatedLater(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")

	w, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v for a not-yet-existing file", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	if !waitForEvent(t, w.Events(), 3*time.Second) {
		t.Fatal("no event after the watched file appeared")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "items.json")

	if _, err := New(path, zap.NewNop()); err == nil {
		t.Fatal("New() error = nil, want an error for a missing parent directory")
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")

	w, err := New(path, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	w.Stop()

	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatal("got an event after Stop, want a closed channel")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("events channel not closed after Stop")
	}
}
