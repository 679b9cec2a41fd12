package vault

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Darsh-A/obsidian-auto-headers/pkg/index"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestWatcherFeedsIndex(t *testing.T) {
	root := t.TempDir()
	v, err := Open(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	ix := index.New(v, 20*time.Millisecond)

	w, err := v.Watch(ix)
	if err != nil {
		t.Skipf("cannot start watcher: %v", err)
	}
	defer w.Close()

	hasHeading := func(want string) func() bool {
		return func() bool {
			for _, e := range ix.Entries() {
				if e.Heading == want {
					return true
				}
			}
			return false
		}
	}

	// A new document gets picked up and indexed after the debounce delay.
	path := filepath.Join(root, "note.md")
	if err := os.WriteFile(path, []byte("# First\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, hasHeading("First"), "created document never indexed")

	// A write replaces the old entries.
	if err := os.WriteFile(path, []byte("# Second\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, hasHeading("Second"), "modified document never reindexed")

	// Removal drops the document entirely.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return len(ix.Entries()) == 0 }, "removed document still indexed")
}

func TestWatcherCoversNewDirectories(t *testing.T) {
	root := t.TempDir()
	v, err := Open(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	ix := index.New(v, 20*time.Millisecond)

	w, err := v.Watch(ix)
	if err != nil {
		t.Skipf("cannot start watcher: %v", err)
	}
	defer w.Close()

	sub := filepath.Join(root, "guides")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	// Give the watcher a moment to pick up the directory before writing
	// into it.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(sub, "new.md"), []byte("# Nested\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		for _, e := range ix.Entries() {
			if e.DocumentID == "guides/new.md" {
				return true
			}
		}
		return false
	}, "document in new directory never indexed")
}
