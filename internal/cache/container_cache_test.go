package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonym0505/intermodal/internal/ledger"
)

func TestContainerCache(t *testing.T) {
	container := &ledger.Container{
		TokenID:    1,
		UnitNumber: "MSKU1234567",
		Owner:      "0xOWNER_A",
	}

	t.Run("set and get return isolated copies", func(t *testing.T) {
		c := NewContainerCache()
		c.Set(container)

		first, found := c.Get(1)
		require.True(t, found)
		assert.Equal(t, "MSKU1234567", first.UnitNumber)

		first.Possessor = "0xPORT_X"

		second, found := c.Get(1)
		require.True(t, found)
		assert.True(t, second.Possessor.IsZero())
	})

	t.Run("miss", func(t *testing.T) {
		c := NewContainerCache()
		_, found := c.Get(42)
		assert.False(t, found)
	})

	t.Run("invalidate", func(t *testing.T) {
		c := NewContainerCache()
		c.Set(container)
		c.Invalidate(1)

		_, found := c.Get(1)
		assert.False(t, found)

		// Invalidating a missing entry is a no-op.
		c.Invalidate(1)
	})

	t.Run("set overwrites", func(t *testing.T) {
		c := NewContainerCache()
		c.Set(container)

		updated := *container
		updated.Possessor = "0xPORT_X"
		c.Set(&updated)

		got, found := c.Get(1)
		require.True(t, found)
		assert.Equal(t, ledger.Identity("0xPORT_X"), got.Possessor)
	})
}
