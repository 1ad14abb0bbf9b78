package ledger

import "time"

// Identity is an opaque, equality-comparable party identifier: a legal
// owner, a facility, or the service operator. The zero value means "no
// identity" and is used where the record has no possessor.
type Identity string

const NoIdentity Identity = ""

func (i Identity) IsZero() bool { return i == NoIdentity }

type HandoffStatus uint8

const (
	HandoffNone HandoffStatus = iota
	HandoffPending
	HandoffConfirmed
)

func (s HandoffStatus) String() string {
	switch s {
	case HandoffPending:
		return "PENDING"
	case HandoffConfirmed:
		return "CONFIRMED"
	default:
		return "NONE"
	}
}

// PendingHandoff is the single per-container handoff slot. It is
// overwritten wholesale by each initiate; a CONFIRMED slot survives as
// a historical marker until the next initiate replaces it.
type PendingHandoff struct {
	From        Identity      `json:"from"`
	To          Identity      `json:"to"`
	Expires     time.Time     `json:"expires"`
	InitiatedAt time.Time     `json:"initiated_at"`
	Status      HandoffStatus `json:"status"`
}

type Container struct {
	TokenID           uint64         `json:"token_id"`
	UnitNumber        string         `json:"unit_number"`
	ISOType           string         `json:"iso_type"`
	OwnerCode         string         `json:"owner_code"`
	TareWeight        int64          `json:"tare_weight"`
	MaxGrossWeight    int64          `json:"max_gross_weight"`
	RegisteredAt      time.Time      `json:"registered_at"`
	Owner             Identity       `json:"owner"`
	Possessor         Identity       `json:"possessor"`
	PossessionExpires time.Time      `json:"possession_expires"`
	Handoff           PendingHandoff `json:"handoff"`
}

// Holder is the identity entitled to initiate a transfer: the
// possessor if one is set, otherwise the legal owner.
func (c *Container) Holder() Identity {
	if !c.Possessor.IsZero() {
		return c.Possessor
	}
	return c.Owner
}

// PossessionInfo is the read-side answer to "who holds this container".
type PossessionInfo struct {
	Owner             Identity
	Possessor         Identity
	PossessionExpires time.Time
}

// InitiateResult reports the slot written by a successful initiate.
// Discarded carries the previous slot when the initiate displaced a
// PENDING or CONFIRMED entry, so callers can surface the discard.
type InitiateResult struct {
	TokenID   uint64
	Handoff   PendingHandoff
	Discarded *PendingHandoff
	Receipt   Receipt
}

// ConfirmResult reports the possession change applied by confirm.
type ConfirmResult struct {
	TokenID           uint64
	Possessor         Identity
	PossessionExpires time.Time
	Location          string
	Receipt           Receipt
}
