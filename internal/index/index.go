package index

// DocIndex defines the interface for doc-cache operations. Consumers should
// depend on this interface rather than the concrete *DB type to facilitate
// testing with mocks.
type DocIndex interface {
	UpsertDoc(d DocRow, body string) error
	DeleteDoc(path string) error
	GetChecksum(path string) (string, error)
	ListDocs(limit, offset int, category, tag string) ([]DocRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies DocIndex at compile time.
var _ DocIndex = (*DB)(nil)
