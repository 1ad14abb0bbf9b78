package handoff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrelationStore(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		store := NewCorrelationStore()
		store.Set(1, "BK-MSKU-AAAA-1111", 2)

		reference, found := store.Get(1)
		assert.True(t, found)
		assert.Equal(t, "BK-MSKU-AAAA-1111", reference)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("missing entry", func(t *testing.T) {
		store := NewCorrelationStore()
		_, found := store.Get(42)
		assert.False(t, found)
	})

	t.Run("newer version wins regardless of arrival order", func(t *testing.T) {
		store := NewCorrelationStore()

		// The later commit's callback lands first.
		store.Set(1, "BK-MSKU-LATER-2222", 3)
		store.Set(1, "BK-MSKU-EARLY-1111", 2)

		reference, found := store.Get(1)
		assert.True(t, found)
		assert.Equal(t, "BK-MSKU-LATER-2222", reference)
	})

	t.Run("equal version overwrites", func(t *testing.T) {
		store := NewCorrelationStore()
		store.Set(1, "BK-MSKU-AAAA-1111", 2)
		store.Set(1, "BK-MSKU-BBBB-2222", 2)

		reference, _ := store.Get(1)
		assert.Equal(t, "BK-MSKU-BBBB-2222", reference)
	})

	t.Run("delete", func(t *testing.T) {
		store := NewCorrelationStore()
		store.Set(1, "BK-MSKU-AAAA-1111", 2)
		store.Delete(1)

		_, found := store.Get(1)
		assert.False(t, found)
		assert.Zero(t, store.Len())

		// Deleting twice is a no-op.
		store.Delete(1)
	})
}
