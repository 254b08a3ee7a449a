package browse

import (
	"errors"
	"testing"

	"github.com/torvik/membank/internal/apperr"
	"github.com/torvik/membank/internal/testutil"
)

func TestTree(t *testing.T) {
	dir, store := testutil.TestBank(t)
	testutil.Seed(t, dir, "core/brief.md", "# Brief")
	testutil.Seed(t, dir, "core/design/api.md", "# API")
	testutil.Seed(t, dir, "core/design/storage.md", "# Storage")
	testutil.Seed(t, dir, "core/notes.txt", "ignored")
	testutil.Seed(t, dir, "core/.drafts/wip.md", "hidden")

	got, err := Tree(store, "core")
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	want := "core/\n" +
		"  brief.md\n" +
		"  design/\n" +
		"    api.md\n" +
		"    storage.md\n"
	if got != want {
		t.Errorf("tree =\n%q\nwant\n%q", got, want)
	}
}

func TestTree_EmptyCategoryDir(t *testing.T) {
	dir, store := testutil.TestBank(t)
	testutil.Seed(t, dir, "core/placeholder.md", "x")
	// An existing category with only the header renders one line per entry.
	got, err := Tree(store, "core")
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if got != "core/\n  placeholder.md\n" {
		t.Errorf("tree = %q", got)
	}
}

func TestTree_UnknownCategory(t *testing.T) {
	dir, store := testutil.TestBank(t)
	testutil.Seed(t, dir, "core/a.md", "x")

	_, err := Tree(store, "nope")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTree_FileIsNotACategory(t *testing.T) {
	dir, store := testutil.TestBank(t)
	testutil.Seed(t, dir, "readme.md", "x")

	if _, err := Tree(store, "readme.md"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for a file path", err)
	}
}

func TestTree_EmptyArgument(t *testing.T) {
	_, store := testutil.TestBank(t)
	if _, err := Tree(store, ""); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestCategories(t *testing.T) {
	dir, store := testutil.TestBank(t)
	testutil.Seed(t, dir, "core/a.md", "x")
	testutil.Seed(t, dir, "progress/b.md", "x")

	cats, err := Categories(store)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(cats) != 2 || cats[0] != "core" || cats[1] != "progress" {
		t.Errorf("categories = %v", cats)
	}
}
