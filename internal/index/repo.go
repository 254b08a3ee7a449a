package index

import (
	"encoding/json"
	"fmt"
	"time"
)

// DocRow represents a row in the docs table.
type DocRow struct {
	Path      string
	Category  string
	Title     string
	Checksum  string
	Tags      []string
	Summary   string
	UpdatedAt time.Time
}

// SearchResult represents one full-text search hit.
type SearchResult struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// UpsertDoc inserts or replaces a doc and its FTS entry within a transaction.
func (db *DB) UpsertDoc(d DocRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(d.Tags)

	// Upsert docs table (includes body for fallback search).
	_, err = tx.Exec(`
		INSERT INTO docs (path, category, title, checksum, tags, summary, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			category   = excluded.category,
			title      = excluded.title,
			checksum   = excluded.checksum,
			tags       = excluded.tags,
			summary    = excluded.summary,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, d.Path, d.Category, d.Title, d.Checksum, string(tagsJSON), d.Summary, body, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert doc: %w", err)
	}

	// FTS upsert (no-op when the FTS5 tag is absent).
	if err := ftsUpsert(tx, d.Path, d.Title, body, d.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteDoc removes a doc and its FTS entry.
func (db *DB) DeleteDoc(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	_, _ = tx.Exec(`DELETE FROM docs WHERE path = ?`, path)

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a doc, or empty string if not found.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM docs WHERE path = ?`, path).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns a path → checksum map for every cached doc.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM docs`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// ListDocs returns a page of docs ordered by path, with optional category
// and tag filters, plus the total count for the same filters.
func (db *DB) ListDocs(limit, offset int, category, tag string) ([]DocRow, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where := `WHERE 1=1`
	args := []any{}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}
	if tag != "" {
		// Tags are stored as a JSON array of strings.
		where += ` AND tags LIKE ?`
		args = append(args, `%"`+tag+`"%`)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM docs `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count docs: %w", err)
	}

	query := `SELECT path, category, title, checksum, tags, summary, updated_at FROM docs ` +
		where + ` ORDER BY path LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list docs: %w", err)
	}
	defer rows.Close()

	var out []DocRow
	for rows.Next() {
		var d DocRow
		var tagsJSON string
		if err := rows.Scan(&d.Path, &d.Category, &d.Title, &d.Checksum, &tagsJSON, &d.Summary, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal([]byte(tagsJSON), &d.Tags); err != nil {
			d.Tags = []string{}
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}
