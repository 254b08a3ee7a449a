package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/torvik/membank/internal/apperr"
	"github.com/torvik/membank/internal/parser"
	"github.com/torvik/membank/internal/storage"
)

// SnapshotFileName is the hidden JSON index file written at the bank root.
const SnapshotFileName = ".membank-index.json"

// Entry is the extracted metadata for one document in the snapshot.
type Entry struct {
	Category string    `json:"category"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Title    string    `json:"title"`
	Tags     []string  `json:"tags"`
	Summary  string    `json:"summary"`
}

// Snapshot is the flat JSON index of the whole bank: per-file metadata plus
// category and tag inverse mappings. It is a pure function of the document
// set at build time and carries no authority; search and browse never read it.
type Snapshot struct {
	Updated    time.Time           `json:"updated"`
	Files      map[string]Entry    `json:"files"`
	Categories map[string][]string `json:"categories"`
	Tags       map[string][]string `json:"tags"`
}

// BuildSnapshot walks the bank and extracts metadata from every document.
// Unreadable files abort the build with a single error naming each of them;
// nothing is dropped silently.
func BuildSnapshot(store storage.Provider) (*Snapshot, error) {
	metas, err := store.List("")
	if err != nil {
		return nil, fmt.Errorf("index: walk bank: %w", err)
	}

	snap := &Snapshot{
		Updated:    time.Now().UTC(),
		Files:      make(map[string]Entry, len(metas)),
		Categories: make(map[string][]string),
		Tags:       make(map[string][]string),
	}

	var unreadable []string
	for _, m := range metas {
		data, err := store.Read(m.Path)
		if err != nil {
			unreadable = append(unreadable, m.Path)
			continue
		}
		meta := parser.Extract(data)
		if meta.Title == "" {
			meta.Title = parser.TitleFromPath(m.Path)
		}

		snap.Files[m.Path] = Entry{
			Category: m.Category,
			Size:     m.Size,
			Modified: m.UpdatedAt,
			Title:    meta.Title,
			Tags:     meta.Tags,
			Summary:  meta.Summary,
		}
		snap.Categories[m.Category] = append(snap.Categories[m.Category], m.Path)
		for _, tag := range meta.Tags {
			snap.Tags[tag] = append(snap.Tags[tag], m.Path)
		}
	}

	if len(unreadable) > 0 {
		return nil, fmt.Errorf("index: %w: %s", apperr.ErrUnreadable, strings.Join(unreadable, ", "))
	}

	for _, paths := range snap.Categories {
		sort.Strings(paths)
	}
	for _, paths := range snap.Tags {
		sort.Strings(paths)
	}

	return snap, nil
}

// WriteSnapshot serializes snap and overwrites the index file at the bank
// root unconditionally. No merge, no versioning.
func WriteSnapshot(root string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("index: marshal snapshot: %w", err)
	}
	path := filepath.Join(root, SnapshotFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("index: write snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads a previously written snapshot, if any.
func ReadSnapshot(root string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(root, SnapshotFileName))
	if err != nil {
		return nil, fmt.Errorf("index: read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("index: parse snapshot: %w", err)
	}
	return &snap, nil
}
