package handoff

import (
	"context"
	"time"
)

// Event types published to the audit stream.
const (
	EventContainerRegistered = "container_registered"
	EventFacilityRegistered  = "facility_registered"
	EventHandoffInitiated    = "handoff_initiated"
	EventHandoffDiscarded    = "handoff_discarded"
	EventPossessionConfirmed = "possession_confirmed"
)

// EventSink receives domain events. Backed by the kafka outbox in
// production, a console producer in dev, and a no-op in tests.
type EventSink interface {
	Emit(ctx context.Context, eventType string, payload interface{})
}

type NopEventSink struct{}

func (NopEventSink) Emit(ctx context.Context, eventType string, payload interface{}) {}

type ContainerRegisteredEvent struct {
	TokenID    uint64 `json:"token_id"`
	UnitNumber string `json:"unit_number"`
	Owner      string `json:"owner"`
	ISOType    string `json:"iso_type"`
}

type FacilityRegisteredEvent struct {
	Address      string `json:"address"`
	Code         string `json:"code"`
	FacilityType string `json:"facility_type"`
	Name         string `json:"name"`
}

type HandoffInitiatedEvent struct {
	TokenID          uint64    `json:"token_id"`
	UnitNumber       string    `json:"unit_number"`
	From             string    `json:"from"`
	To               string    `json:"to"`
	Expires          time.Time `json:"expires"`
	InitiatedAt      time.Time `json:"initiated_at"`
	BookingReference string    `json:"booking_reference"`
}

type HandoffDiscardedEvent struct {
	TokenID     uint64    `json:"token_id"`
	UnitNumber  string    `json:"unit_number"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	InitiatedAt time.Time `json:"initiated_at"`
	Status      string    `json:"status"`
}

type PossessionConfirmedEvent struct {
	TokenID           uint64    `json:"token_id"`
	UnitNumber        string    `json:"unit_number"`
	Possessor         string    `json:"possessor"`
	PossessionExpires time.Time `json:"possession_expires"`
	Location          string    `json:"location"`
}
