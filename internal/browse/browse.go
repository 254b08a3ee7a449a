// Package browse renders an indented tree of the Markdown files in one
// category of the bank.
package browse

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/torvik/membank/internal/apperr"
	"github.com/torvik/membank/internal/storage"
)

// Tree returns the indented listing for category: directories end with "/",
// Markdown files are leaves, each level indents two spaces, entries sorted
// alphabetically. An unknown category fails with apperr.ErrNotFound; callers
// are expected to show the available categories alongside.
func Tree(store storage.Provider, category string) (string, error) {
	if category == "" {
		return "", fmt.Errorf("browse: empty category: %w", apperr.ErrInvalidArgument)
	}

	dir := filepath.Join(store.Root(), category)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("browse: category %q: %w", category, apperr.ErrNotFound)
	}

	var b strings.Builder
	b.WriteString(category + "/\n")
	if err := renderDir(&b, dir, 1); err != nil {
		return "", fmt.Errorf("browse: %w", err)
	}
	return b.String(), nil
}

// renderDir writes the entries of dir at the given depth, recursing into
// non-hidden subdirectories. os.ReadDir sorts by name, so output is stable.
func renderDir(b *strings.Builder, dir string, depth int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if e.IsDir() {
			fmt.Fprintf(b, "%s%s/\n", indent, e.Name())
			if err := renderDir(b, filepath.Join(dir, e.Name()), depth+1); err != nil {
				return err
			}
			continue
		}
		if strings.HasSuffix(e.Name(), ".md") {
			fmt.Fprintf(b, "%s%s\n", indent, e.Name())
		}
	}
	return nil
}

// Categories returns the available top-level category names.
func Categories(store storage.Provider) ([]string, error) {
	return store.Categories()
}
