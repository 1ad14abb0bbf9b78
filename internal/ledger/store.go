package ledger

import (
	"context"
	"time"
)

// Receipt is the durability acknowledgment returned once a mutation is
// committed. Version is the record version after the commit.
type Receipt struct {
	Version     uint64
	CommittedAt time.Time
}

// Mutation rewrites a container record in place. The store applies it
// as a single indivisible step relative to other mutations on the same
// record.
type Mutation func(c *Container)

// Store is the transactional substrate the ledger runs on. Any backend
// works as long as Insert enforces unit-number uniqueness and
// ApplyIfCurrentMatches commits only when the record version still
// equals expectedVersion (returning ErrVersionConflict otherwise).
// Token ids are assigned by the store from a strictly increasing
// counter starting at 1; 0 is the "not found" sentinel.
type Store interface {
	// Get returns a copy of the record and its current version.
	Get(ctx context.Context, tokenID uint64) (*Container, uint64, error)

	// TokenIDByUnitNumber returns 0 when the unit number is unknown.
	TokenIDByUnitNumber(ctx context.Context, unitNumber string) (uint64, error)

	// Insert assigns the next tokenId and persists the record. Returns
	// ErrConflict when the unit number is already registered.
	Insert(ctx context.Context, c *Container) (uint64, Receipt, error)

	// ApplyIfCurrentMatches atomically applies mutate to the record iff
	// its version equals expectedVersion.
	ApplyIfCurrentMatches(ctx context.Context, tokenID, expectedVersion uint64, mutate Mutation) (Receipt, error)
}
