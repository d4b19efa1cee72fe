package ledger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ragzilla/GetOffMyNetwork/internal/domain/trust"
)

// FileStore persists the trust ledger to a single document on disk.
// The file is read once at startup and rewritten as a whole after each
// decision commit; there are no partial or append writes.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted ledger. A missing file yields an empty ledger;
// so does an unreadable one: prior decisions are simply absent and the
// document will be rewritten whole on the next commit.
func (s *FileStore) Load() (*trust.Ledger, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("trust ledger unreadable, starting empty", "path", s.path, "error", err)
		}
		return trust.NewLedger(), nil
	}
	return Unmarshal(data), nil
}

// Save atomically rewrites the whole document: write to a temp file in the
// same directory, then rename over the target.
func (s *FileStore) Save(ledger *trust.Ledger) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(Marshal(ledger)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing ledger file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing ledger file: %w", err)
	}
	return nil
}
