package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memRecord struct {
	container Container
	version   uint64
}

// MemoryStore is the in-process Store: a map guarded by a RWMutex with
// a monotonically increasing token counter. Commits are acknowledged
// immediately; the mutex makes each mutation a single indivisible step
// per record.
type MemoryStore struct {
	mu          sync.RWMutex
	records     map[uint64]*memRecord
	unitNumbers map[string]uint64
	lastTokenID uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:     make(map[uint64]*memRecord),
		unitNumbers: make(map[string]uint64),
	}
}

func (s *MemoryStore) Get(ctx context.Context, tokenID uint64) (*Container, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[tokenID]
	if !ok {
		return nil, 0, fmt.Errorf("token %d: %w", tokenID, ErrNotFound)
	}
	containerCopy := rec.container
	return &containerCopy, rec.version, nil
}

func (s *MemoryStore) TokenIDByUnitNumber(ctx context.Context, unitNumber string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unitNumbers[unitNumber], nil
}

func (s *MemoryStore) Insert(ctx context.Context, c *Container) (uint64, Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.unitNumbers[c.UnitNumber]; exists {
		return 0, Receipt{}, fmt.Errorf("unit number %s: %w", c.UnitNumber, ErrConflict)
	}

	s.lastTokenID++
	tokenID := s.lastTokenID
	c.TokenID = tokenID

	s.records[tokenID] = &memRecord{container: *c, version: 1}
	s.unitNumbers[c.UnitNumber] = tokenID

	return tokenID, Receipt{Version: 1, CommittedAt: time.Now().UTC()}, nil
}

func (s *MemoryStore) ApplyIfCurrentMatches(ctx context.Context, tokenID, expectedVersion uint64, mutate Mutation) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[tokenID]
	if !ok {
		return Receipt{}, fmt.Errorf("token %d: %w", tokenID, ErrNotFound)
	}
	if rec.version != expectedVersion {
		return Receipt{}, fmt.Errorf("token %d at version %d, expected %d: %w", tokenID, rec.version, expectedVersion, ErrVersionConflict)
	}

	mutate(&rec.container)
	rec.version++

	return Receipt{Version: rec.version, CommittedAt: time.Now().UTC()}, nil
}

// snapshot returns every record for persistence layers built on top.
func (s *MemoryStore) snapshot() ([]Container, []uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	containers := make([]Container, 0, len(s.records))
	versions := make([]uint64, 0, len(s.records))
	for id := uint64(1); id <= s.lastTokenID; id++ {
		if rec, ok := s.records[id]; ok {
			containers = append(containers, rec.container)
			versions = append(versions, rec.version)
		}
	}
	return containers, versions
}

// restore seeds the store from a snapshot, keeping the token counter
// ahead of every restored record.
func (s *MemoryStore) restore(containers []Container, versions []uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range containers {
		version := uint64(1)
		if i < len(versions) {
			version = versions[i]
		}
		s.records[c.TokenID] = &memRecord{container: c, version: version}
		s.unitNumbers[c.UnitNumber] = c.TokenID
		if c.TokenID > s.lastTokenID {
			s.lastTokenID = c.TokenID
		}
	}
}
