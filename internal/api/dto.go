package api

import (
	"github.com/torvik/membank/internal/docservice"
	"github.com/torvik/membank/internal/index"
	"github.com/torvik/membank/internal/models"
)

// DocDetail is the full document response type (aliased from the domain layer).
type DocDetail = docservice.DocDetail

// DocListItem is a lightweight item in a list response (aliased from the domain layer).
type DocListItem = docservice.DocListItem

// DocListResponse wraps paginated document listings.
type DocListResponse struct {
	Docs  []DocListItem `json:"docs"`
	Total int           `json:"total"`
}

// SearchResponse wraps full-text search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results"`
}

// GrepResponse wraps direct line-scan matches.
type GrepResponse struct {
	Matches []models.Match `json:"matches"`
}

// CategoriesResponse lists the top-level categories of the bank.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// TreeResponse carries the rendered tree for one category.
type TreeResponse struct {
	Category string `json:"category"`
	Tree     string `json:"tree"`
}
