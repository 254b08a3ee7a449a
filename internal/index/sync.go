package index

import (
	"log/slog"

	"github.com/torvik/membank/internal/checksum"
	"github.com/torvik/membank/internal/models"
	"github.com/torvik/membank/internal/parser"
	"github.com/torvik/membank/internal/storage"
)

// Sync walks the bank and brings the SQLite cache up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the cache
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if checksums[m.Path] == checksum.Sum(data) {
			continue
		}
		if err := indexFile(db, m, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteDoc(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile extracts metadata from data and upserts it into the cache.
func indexFile(db *DB, m models.DocMeta, data []byte) error {
	meta := parser.Extract(data)
	if meta.Title == "" {
		meta.Title = parser.TitleFromPath(m.Path)
	}

	return db.UpsertDoc(DocRow{
		Path:      m.Path,
		Category:  m.Category,
		Title:     meta.Title,
		Checksum:  checksum.Sum(data),
		Tags:      meta.Tags,
		Summary:   meta.Summary,
		UpdatedAt: m.UpdatedAt,
	}, string(data))
}
