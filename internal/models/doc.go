// Package models defines the domain types for membank.
package models

import (
	"strings"
	"time"
)

// RootCategory is the category assigned to files living directly in the bank root.
const RootCategory = "root"

// CategoryOf returns the first element of a slash-separated relative path,
// or RootCategory for files without a directory prefix.
func CategoryOf(rel string) string {
	if i := strings.IndexByte(rel, '/'); i > 0 {
		return rel[:i]
	}
	return RootCategory
}

// DocMeta is a lightweight representation of a bank document returned by
// list operations. Category is the first path element under the bank root,
// or "root" for files living directly in it. Listing never opens the file;
// content digests are computed by the callers that read it.
type DocMeta struct {
	Path      string    `json:"path"`
	Category  string    `json:"category"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Match is a single search hit: one line of one document containing the query.
// Line numbers are 1-based; Text is the trimmed line content in original case.
type Match struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Text string `json:"text"`
}
