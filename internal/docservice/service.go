// Package docservice coordinates storage, the SQLite cache, and the JSON
// snapshot for the HTTP API and MCP surfaces.
package docservice

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/torvik/membank/internal/apperr"
	"github.com/torvik/membank/internal/browse"
	"github.com/torvik/membank/internal/checksum"
	"github.com/torvik/membank/internal/index"
	"github.com/torvik/membank/internal/models"
	"github.com/torvik/membank/internal/parser"
	"github.com/torvik/membank/internal/search"
	"github.com/torvik/membank/internal/storage"
)

// DocDetail is the full representation of a bank document.
type DocDetail struct {
	Path      string    `json:"path"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Tags      []string  `json:"tags"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocListItem is a lightweight item in a list response.
type DocListItem struct {
	Path      string    `json:"path"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Tags      []string  `json:"tags"`
	Summary   string    `json:"summary"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service coordinates storage and index operations.
type Service struct {
	store storage.Provider
	db    index.DocIndex
}

// NewService creates a new doc service.
func NewService(store storage.Provider, db index.DocIndex) *Service {
	return &Service{store: store, db: db}
}

// GetDoc reads a document from storage and extracts its metadata.
func (s *Service) GetDoc(_ context.Context, path string) (*DocDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	meta := parser.Extract(data)
	if meta.Title == "" {
		meta.Title = parser.TitleFromPath(path)
	}
	return &DocDetail{
		Path:      path,
		Category:  models.CategoryOf(path),
		Title:     meta.Title,
		Tags:      meta.Tags,
		Summary:   meta.Summary,
		Content:   string(data),
		Checksum:  checksum.Sum(data),
		UpdatedAt: time.Now(),
	}, nil
}

// ListDocs returns paginated documents with optional category and tag filters.
func (s *Service) ListDocs(_ context.Context, limit, offset int, category, tag string) ([]DocListItem, int, error) {
	rows, total, err := s.db.ListDocs(limit, offset, category, tag)
	if err != nil {
		return nil, 0, err
	}
	items := make([]DocListItem, len(rows))
	for i, r := range rows {
		items[i] = DocListItem{
			Path:      r.Path,
			Category:  r.Category,
			Title:     r.Title,
			Tags:      nonNilSlice(r.Tags),
			Summary:   r.Summary,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the SQLite cache.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Grep runs the direct line scan over the bank, bypassing the cache.
func (s *Service) Grep(_ context.Context, query string) ([]models.Match, error) {
	return search.Grep(s.store, query)
}

// Categories returns the available top-level categories.
func (s *Service) Categories(_ context.Context) ([]string, error) {
	return s.store.Categories()
}

// Tree renders the indented file tree for one category.
func (s *Service) Tree(_ context.Context, category string) (string, error) {
	return browse.Tree(s.store, category)
}

// RebuildSnapshot rebuilds the JSON index file at the bank root and returns it.
func (s *Service) RebuildSnapshot(_ context.Context) (*index.Snapshot, error) {
	snap, err := index.BuildSnapshot(s.store)
	if err != nil {
		return nil, err
	}
	if err := index.WriteSnapshot(s.store.Root(), snap); err != nil {
		return nil, err
	}
	return snap, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
