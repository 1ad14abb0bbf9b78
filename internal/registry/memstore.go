package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/antonym0505/intermodal/internal/ledger"
)

// MemoryStore keeps facilities in process memory. Registration order
// is preserved for All.
type MemoryStore struct {
	mu         sync.RWMutex
	byAddress  map[ledger.Identity]*Facility
	codesInUse map[string]ledger.Identity
	order      []ledger.Identity
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byAddress:  make(map[ledger.Identity]*Facility),
		codesInUse: make(map[string]ledger.Identity),
	}
}

func (s *MemoryStore) Get(ctx context.Context, address ledger.Identity) (*Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	facility, ok := s.byAddress[address]
	if !ok {
		return nil, fmt.Errorf("address %s: %w", address, ErrNotFound)
	}
	facilityCopy := *facility
	return &facilityCopy, nil
}

func (s *MemoryStore) Insert(ctx context.Context, f *Facility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byAddress[f.Address]; exists {
		return fmt.Errorf("address %s: %w", f.Address, ErrConflict)
	}
	if holder, exists := s.codesInUse[f.Code]; exists && holder != f.Address {
		return fmt.Errorf("code %s in use by %s: %w", f.Code, holder, ErrConflict)
	}

	facilityCopy := *f
	s.byAddress[f.Address] = &facilityCopy
	s.codesInUse[f.Code] = f.Address
	s.order = append(s.order, f.Address)
	return nil
}

func (s *MemoryStore) SetActive(ctx context.Context, address ledger.Identity, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	facility, ok := s.byAddress[address]
	if !ok {
		return fmt.Errorf("address %s: %w", address, ErrNotFound)
	}
	facility.IsActive = active
	return nil
}

func (s *MemoryStore) All(ctx context.Context) ([]Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	facilities := make([]Facility, 0, len(s.order))
	for _, address := range s.order {
		facilities = append(facilities, *s.byAddress[address])
	}
	return facilities, nil
}
