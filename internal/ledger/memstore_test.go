package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("insert assigns sequential token ids", func(t *testing.T) {
		store := NewMemoryStore()

		first, receipt, err := store.Insert(ctx, &Container{UnitNumber: "MSKU1234567", Owner: ownerA})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), first)
		assert.Equal(t, uint64(1), receipt.Version)

		second, _, err := store.Insert(ctx, &Container{UnitNumber: "TCLU7654321", Owner: ownerA})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), second)
	})

	t.Run("duplicate unit number", func(t *testing.T) {
		store := NewMemoryStore()
		_, _, err := store.Insert(ctx, &Container{UnitNumber: "MSKU1234567", Owner: ownerA})
		require.NoError(t, err)

		_, _, err = store.Insert(ctx, &Container{UnitNumber: "MSKU1234567", Owner: ownerA})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("get returns an isolated copy", func(t *testing.T) {
		store := NewMemoryStore()
		tokenID, _, err := store.Insert(ctx, &Container{UnitNumber: "MSKU1234567", Owner: ownerA})
		require.NoError(t, err)

		first, _, err := store.Get(ctx, tokenID)
		require.NoError(t, err)
		first.Owner = stranger

		second, _, err := store.Get(ctx, tokenID)
		require.NoError(t, err)
		assert.Equal(t, ownerA, second.Owner)
	})

	t.Run("unknown token", func(t *testing.T) {
		store := NewMemoryStore()
		_, _, err := store.Get(ctx, 42)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unit number lookup", func(t *testing.T) {
		store := NewMemoryStore()
		tokenID, _, err := store.Insert(ctx, &Container{UnitNumber: "MSKU1234567", Owner: ownerA})
		require.NoError(t, err)

		found, err := store.TokenIDByUnitNumber(ctx, "MSKU1234567")
		require.NoError(t, err)
		assert.Equal(t, tokenID, found)

		missing, err := store.TokenIDByUnitNumber(ctx, "TCLU7654321")
		require.NoError(t, err)
		assert.Zero(t, missing)
	})
}

func TestMemoryStoreApplyIfCurrentMatches(t *testing.T) {
	ctx := context.Background()

	t.Run("matching version commits and bumps", func(t *testing.T) {
		store := NewMemoryStore()
		tokenID, _, err := store.Insert(ctx, &Container{UnitNumber: "MSKU1234567", Owner: ownerA})
		require.NoError(t, err)

		receipt, err := store.ApplyIfCurrentMatches(ctx, tokenID, 1, func(c *Container) {
			c.Possessor = portX
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), receipt.Version)

		container, version, err := store.Get(ctx, tokenID)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), version)
		assert.Equal(t, portX, container.Possessor)
	})

	t.Run("stale version conflicts without mutating", func(t *testing.T) {
		store := NewMemoryStore()
		tokenID, _, err := store.Insert(ctx, &Container{UnitNumber: "MSKU1234567", Owner: ownerA})
		require.NoError(t, err)

		_, err = store.ApplyIfCurrentMatches(ctx, tokenID, 1, func(c *Container) {
			c.Possessor = portX
		})
		require.NoError(t, err)

		_, err = store.ApplyIfCurrentMatches(ctx, tokenID, 1, func(c *Container) {
			c.Possessor = depotY
		})
		assert.ErrorIs(t, err, ErrVersionConflict)

		container, version, err := store.Get(ctx, tokenID)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), version)
		assert.Equal(t, portX, container.Possessor)
	})

	t.Run("unknown token", func(t *testing.T) {
		store := NewMemoryStore()
		_, err := store.ApplyIfCurrentMatches(ctx, 42, 1, func(c *Container) {})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
