package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type fileSnapshot struct {
	Containers []Container `json:"containers"`
	Versions   []uint64    `json:"versions"`
}

// FileStore wraps a MemoryStore with a JSON snapshot written after
// every durable commit and reloaded at startup. Good enough for a
// single-process deployment without postgres; the commit still happens
// in memory first, so the apply-if-version-matches guarantee is the
// memory store's.
type FileStore struct {
	*MemoryStore

	filePath string
	saveMu   sync.Mutex
}

func NewFileStore(filePath string) (*FileStore, error) {
	fs := &FileStore{
		MemoryStore: NewMemoryStore(),
		filePath:    filePath,
	}
	if err := fs.load(); err != nil {
		return nil, fmt.Errorf("load ledger snapshot: %w", err)
	}
	return fs, nil
}

func (fs *FileStore) load() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var snap fileSnapshot
	if err := json.NewDecoder(file).Decode(&snap); err != nil {
		return err
	}
	fs.restore(snap.Containers, snap.Versions)
	return nil
}

func (fs *FileStore) save() error {
	fs.saveMu.Lock()
	defer fs.saveMu.Unlock()

	containers, versions := fs.snapshot()

	file, err := os.Create(fs.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(fileSnapshot{Containers: containers, Versions: versions})
}

func (fs *FileStore) Insert(ctx context.Context, c *Container) (uint64, Receipt, error) {
	tokenID, receipt, err := fs.MemoryStore.Insert(ctx, c)
	if err != nil {
		return 0, Receipt{}, err
	}
	if err := fs.save(); err != nil {
		return 0, Receipt{}, fmt.Errorf("persist ledger snapshot: %w", err)
	}
	return tokenID, receipt, nil
}

func (fs *FileStore) ApplyIfCurrentMatches(ctx context.Context, tokenID, expectedVersion uint64, mutate Mutation) (Receipt, error) {
	receipt, err := fs.MemoryStore.ApplyIfCurrentMatches(ctx, tokenID, expectedVersion, mutate)
	if err != nil {
		return Receipt{}, err
	}
	if err := fs.save(); err != nil {
		return Receipt{}, fmt.Errorf("persist ledger snapshot: %w", err)
	}
	return receipt, nil
}
