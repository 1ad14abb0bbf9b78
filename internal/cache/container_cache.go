package cache

import (
	"sync"

	"github.com/antonym0505/intermodal/internal/ledger"
	"github.com/antonym0505/intermodal/internal/metrics"
)

// ContainerCache keeps recently read container records in memory,
// keyed by tokenId. Entries are copies both ways; mutating callers
// must Invalidate (or Set the committed record) after a ledger write.
type ContainerCache struct {
	mu    sync.RWMutex
	cache map[uint64]*ledger.Container
}

func NewContainerCache() *ContainerCache {
	return &ContainerCache{
		cache: make(map[uint64]*ledger.Container),
	}
}

func (c *ContainerCache) Get(tokenID uint64) (*ledger.Container, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	container, found := c.cache[tokenID]
	if !found {
		return nil, false
	}
	containerCopy := *container
	return &containerCopy, true
}

func (c *ContainerCache) Set(container *ledger.Container) {
	c.mu.Lock()
	defer c.mu.Unlock()
	containerCopy := *container
	c.cache[container.TokenID] = &containerCopy
	metrics.ContainerCacheItems.Set(float64(len(c.cache)))
}

func (c *ContainerCache) Invalidate(tokenID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.cache[tokenID]; found {
		delete(c.cache, tokenID)
		metrics.ContainerCacheItems.Set(float64(len(c.cache)))
	}
}
