// Package search implements the line-oriented keyword search over the bank.
// It deliberately bypasses both the JSON snapshot and the SQLite cache and
// re-scans files directly, so results are always consistent with the disk
// even when the indexes are stale.
package search

import (
	"fmt"
	"strings"

	"github.com/torvik/membank/internal/apperr"
	"github.com/torvik/membank/internal/models"
	"github.com/torvik/membank/internal/storage"
)

// Grep scans every line of every Markdown file in the bank for a
// case-insensitive substring match of query and returns the matches in
// sorted traversal order with 1-based line numbers and trimmed line text.
//
// An empty query fails with apperr.ErrInvalidArgument before any traversal.
// Unreadable files abort the scan with an error listing each of them.
func Grep(store storage.Provider, query string) ([]models.Match, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search: empty keyword: %w", apperr.ErrInvalidArgument)
	}

	metas, err := store.List("")
	if err != nil {
		return nil, fmt.Errorf("search: walk bank: %w", err)
	}

	needle := strings.ToLower(query)
	var matches []models.Match
	var unreadable []string

	for _, m := range metas {
		data, err := store.Read(m.Path)
		if err != nil {
			unreadable = append(unreadable, m.Path)
			continue
		}
		for i, line := range strings.Split(string(data), "\n") {
			if strings.Contains(strings.ToLower(line), needle) {
				matches = append(matches, models.Match{
					Path: m.Path,
					Line: i + 1,
					Text: strings.TrimSpace(line),
				})
			}
		}
	}

	if len(unreadable) > 0 {
		return nil, fmt.Errorf("search: %w: %s", apperr.ErrUnreadable, strings.Join(unreadable, ", "))
	}

	return matches, nil
}
