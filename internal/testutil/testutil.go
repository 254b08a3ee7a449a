// Package testutil provides shared test helpers for setting up banks and databases.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/torvik/membank/internal/index"
	"github.com/torvik/membank/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "membank-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestBank creates a temporary bank directory with a storage.Provider.
func TestBank(t *testing.T) (string, storage.Provider) {
	t.Helper()
	bankDir := t.TempDir()
	store, err := storage.NewFS(bankDir)
	if err != nil {
		t.Fatal(err)
	}
	return bankDir, store
}

// Seed writes a file into the bank, creating parent directories.
func Seed(t *testing.T, bankDir, rel, content string) {
	t.Helper()
	abs := filepath.Join(bankDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
