package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	tokenID, _, err := store.Insert(ctx, &Container{UnitNumber: "MSKU1234567", Owner: ownerA})
	require.NoError(t, err)

	_, err = store.ApplyIfCurrentMatches(ctx, tokenID, 1, func(c *Container) {
		c.Possessor = portX
		c.Handoff.Status = HandoffConfirmed
	})
	require.NoError(t, err)

	// A fresh store over the same file sees the committed state.
	reloaded, err := NewFileStore(path)
	require.NoError(t, err)

	container, version, err := reloaded.Get(ctx, tokenID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)
	assert.Equal(t, portX, container.Possessor)
	assert.Equal(t, HandoffConfirmed, container.Handoff.Status)

	found, err := reloaded.TokenIDByUnitNumber(ctx, "MSKU1234567")
	require.NoError(t, err)
	assert.Equal(t, tokenID, found)

	// The token counter stays ahead of restored records.
	next, _, err := reloaded.Insert(ctx, &Container{UnitNumber: "TCLU7654321", Owner: ownerA})
	require.NoError(t, err)
	assert.Equal(t, tokenID+1, next)
}

func TestFileStoreMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
