package index

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/torvik/membank/internal/apperr"
	"github.com/torvik/membank/internal/models"
	"github.com/torvik/membank/internal/storage"
)

func snapshotBank(t *testing.T, files map[string]string) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

func TestBuildSnapshot_Metadata(t *testing.T) {
	_, store := snapshotBank(t, map[string]string{
		"core/hello.md": "# Hello\ntags: [x, y]\nSome summary text.\n",
	})

	snap, err := BuildSnapshot(store)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}

	e, ok := snap.Files["core/hello.md"]
	if !ok {
		t.Fatalf("file missing from snapshot: %v", snap.Files)
	}
	if e.Title != "Hello" {
		t.Errorf("title = %q, want Hello", e.Title)
	}
	if !reflect.DeepEqual(e.Tags, []string{"x", "y"}) {
		t.Errorf("tags = %v, want [x y]", e.Tags)
	}
	if e.Summary != "Some summary text." {
		t.Errorf("summary = %q", e.Summary)
	}
	if e.Category != "core" {
		t.Errorf("category = %q, want core", e.Category)
	}
	if e.Size == 0 || e.Modified.IsZero() {
		t.Errorf("file stats not populated: %+v", e)
	}

	if !reflect.DeepEqual(snap.Categories["core"], []string{"core/hello.md"}) {
		t.Errorf("categories = %v", snap.Categories)
	}
	if !reflect.DeepEqual(snap.Tags["x"], []string{"core/hello.md"}) {
		t.Errorf("tags index = %v", snap.Tags)
	}
}

func TestBuildSnapshot_TitleFallbackAndRootCategory(t *testing.T) {
	_, store := snapshotBank(t, map[string]string{
		"notes.md": "no heading here\n",
	})

	snap, err := BuildSnapshot(store)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	e := snap.Files["notes.md"]
	if e.Title != "notes" {
		t.Errorf("fallback title = %q, want notes", e.Title)
	}
	if e.Category != models.RootCategory {
		t.Errorf("category = %q, want %q", e.Category, models.RootCategory)
	}
}

func TestBuildSnapshot_Deterministic(t *testing.T) {
	_, store := snapshotBank(t, map[string]string{
		"b/two.md":   "# Two\ntags: [shared]\n",
		"a/one.md":   "# One\ntags: [shared]\n",
		"a/three.md": "# Three\n",
	})

	first, err := BuildSnapshot(store)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	second, err := BuildSnapshot(store)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}

	// Identical input produces identical output except the updated stamp.
	first.Updated = second.Updated
	if !reflect.DeepEqual(first, second) {
		t.Errorf("snapshots differ:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(second.Tags["shared"], []string{"a/one.md", "b/two.md"}) {
		t.Errorf("tag paths not sorted: %v", second.Tags["shared"])
	}
}

// failingProvider wraps a real provider but refuses to read chosen paths.
type failingProvider struct {
	storage.Provider
	fail map[string]bool
}

func (p *failingProvider) Read(path string) ([]byte, error) {
	if p.fail[path] {
		return nil, errors.New("permission denied")
	}
	return p.Provider.Read(path)
}

func TestBuildSnapshot_UnreadableAborts(t *testing.T) {
	_, store := snapshotBank(t, map[string]string{
		"a.md": "# A",
		"b.md": "# B",
		"c.md": "# C",
	})
	wrapped := &failingProvider{Provider: store, fail: map[string]bool{"a.md": true, "c.md": true}}

	snap, err := BuildSnapshot(wrapped)
	if snap != nil {
		t.Error("expected nil snapshot on unreadable files")
	}
	if !errors.Is(err, apperr.ErrUnreadable) {
		t.Fatalf("err = %v, want ErrUnreadable", err)
	}
	// The error names every unreadable path, not only the first.
	if !strings.Contains(err.Error(), "a.md") || !strings.Contains(err.Error(), "c.md") {
		t.Errorf("error should list all unreadable paths: %v", err)
	}
}

func TestBuildSnapshot_UnreadableOnRealProvider(t *testing.T) {
	dir, store := snapshotBank(t, map[string]string{
		"good.md": "# Good",
	})
	// Dangling symlinks list fine but fail on read.
	for _, name := range []string{"bad.md", "worse.md"} {
		if err := os.Symlink(filepath.Join(dir, "gone-target"), filepath.Join(dir, name)); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
	}

	snap, err := BuildSnapshot(store)
	if snap != nil {
		t.Error("expected nil snapshot on unreadable files")
	}
	if !errors.Is(err, apperr.ErrUnreadable) {
		t.Fatalf("err = %v, want ErrUnreadable", err)
	}
	if !strings.Contains(err.Error(), "bad.md") || !strings.Contains(err.Error(), "worse.md") {
		t.Errorf("error should list all unreadable paths: %v", err)
	}
}

func TestWriteAndReadSnapshot(t *testing.T) {
	dir, store := snapshotBank(t, map[string]string{
		"core/hello.md": "# Hello\n",
	})

	snap, err := BuildSnapshot(store)
	if err != nil {
		t.Fatalf("BuildSnapshot: %v", err)
	}
	if err := WriteSnapshot(dir, snap); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	// The index file is hidden and valid JSON.
	raw, err := os.ReadFile(filepath.Join(dir, SnapshotFileName))
	if err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}

	got, err := ReadSnapshot(dir)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}
	if _, ok := got.Files["core/hello.md"]; !ok {
		t.Errorf("round-tripped snapshot missing file: %v", got.Files)
	}
}

func TestWriteSnapshot_Overwrites(t *testing.T) {
	dir, store := snapshotBank(t, map[string]string{"a.md": "# A"})

	snap, _ := BuildSnapshot(store)
	if err := WriteSnapshot(dir, snap); err != nil {
		t.Fatal(err)
	}

	// Rebuild after a change and write again; the old content is replaced.
	if err := os.WriteFile(filepath.Join(dir, "b.md"), []byte("# B"), 0o644); err != nil {
		t.Fatal(err)
	}
	snap2, err := BuildSnapshot(store)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteSnapshot(dir, snap2); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSnapshot(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Files) != 2 {
		t.Errorf("len(files) = %d, want 2", len(got.Files))
	}
}

func TestBuildSnapshot_SkipsIndexFileItself(t *testing.T) {
	dir, store := snapshotBank(t, map[string]string{"a.md": "# A"})
	snap, _ := BuildSnapshot(store)
	if err := WriteSnapshot(dir, snap); err != nil {
		t.Fatal(err)
	}

	again, err := BuildSnapshot(store)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := again.Files[SnapshotFileName]; ok {
		t.Error("hidden index file should never be indexed")
	}
	if len(again.Files) != 1 {
		t.Errorf("len(files) = %d, want 1", len(again.Files))
	}
}
