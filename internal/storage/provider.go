// Package storage defines the memory-bank file-system abstraction.
package storage

import "github.com/torvik/membank/internal/models"

// Provider is the read-side interface over a memory bank directory.
// All paths are relative to the bank root and use forward slashes.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to the
	// bank root), in sorted traversal order. Hidden directories are skipped.
	// List only stats entries; file contents are obtained through Read.
	List(dir string) ([]models.DocMeta, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Categories returns the sorted top-level directory names of the bank.
	Categories() ([]string, error)
	// Root returns the absolute path of the bank root.
	Root() string
}
