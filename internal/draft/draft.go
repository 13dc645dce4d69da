package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"crm-golang/internal/storage"
)

// FileStore keeps one serialized deal record in a single well-known
// slot on disk, the server-side analogue of the browser "dealDraft" key.
// One draft at a time, overwritten on every save.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(rec storage.DealRecord) error {
	const op = "draft.FileStore.Save"

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Load returns the persisted record, or (nil, nil) when the slot is
// empty. A corrupted slot is treated as absent and cleared; corruption
// never surfaces as an error to the caller.
func (s *FileStore) Load() (*storage.DealRecord, error) {
	const op = "draft.FileStore.Load"

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var rec storage.DealRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		_ = os.Remove(s.path)
		return nil, nil
	}
	return &rec, nil
}

func (s *FileStore) Clear() error {
	const op = "draft.FileStore.Clear"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
