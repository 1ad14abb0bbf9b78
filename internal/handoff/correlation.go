package handoff

import (
	"sync"

	"github.com/antonym0505/intermodal/internal/metrics"
)

type correlationEntry struct {
	reference string
	version   uint64
}

// CorrelationStore maps tokenId to the live booking reference. It is
// ephemeral by contract: constructed at service start, torn down at
// shutdown, and losing it never violates ledger correctness. Writes
// are keyed off the ledger commit version so that when two initiates
// race, the reference of the mutation that actually committed last is
// the one that sticks.
type CorrelationStore struct {
	mu      sync.RWMutex
	entries map[uint64]correlationEntry
}

func NewCorrelationStore() *CorrelationStore {
	return &CorrelationStore{
		entries: make(map[uint64]correlationEntry),
	}
}

func (c *CorrelationStore) Get(tokenID uint64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, found := c.entries[tokenID]
	if !found {
		return "", false
	}
	return entry.reference, true
}

// Set records the reference for the given commit version. A stale
// write (older version than the stored one) is dropped.
func (c *CorrelationStore) Set(tokenID uint64, reference string, version uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, found := c.entries[tokenID]; found && existing.version > version {
		return
	}
	c.entries[tokenID] = correlationEntry{reference: reference, version: version}
	metrics.CorrelationEntries.Set(float64(len(c.entries)))
}

func (c *CorrelationStore) Delete(tokenID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.entries[tokenID]; found {
		delete(c.entries, tokenID)
		metrics.CorrelationEntries.Set(float64(len(c.entries)))
	}
}

func (c *CorrelationStore) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
