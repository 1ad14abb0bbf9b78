//go:generate mockgen -source ./coordinator.go -destination=./mocks/coordinator.go -package=mock_handoff
package handoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/antonym0505/intermodal/internal/ledger"
	"github.com/antonym0505/intermodal/internal/metrics"
)

// ErrInvalidReference: the presented booking reference does not match
// the live correlation entry for the container.
var ErrInvalidReference = errors.New("invalid booking reference")

// Ledger is the slice of the container ledger the coordinator drives.
type Ledger interface {
	TokenIDByUnitNumber(ctx context.Context, unitNumber string) (uint64, error)
	GetContainer(ctx context.Context, tokenID uint64) (*ledger.Container, error)
	InitiatePossessionTransfer(ctx context.Context, caller ledger.Identity, tokenID uint64, to ledger.Identity, duration time.Duration) (*ledger.InitiateResult, error)
	ConfirmPossession(ctx context.Context, caller ledger.Identity, tokenID uint64, location string) (*ledger.ConfirmResult, error)
}

type Config struct {
	// EmitDiscards publishes a handoff_discarded event whenever an
	// initiate displaces a still-pending slot. Off by default; external
	// auditors that need visibility into never-confirmed handoffs turn
	// it on.
	EmitDiscards bool
}

// Coordinator orchestrates initiate/confirm against the ledger and
// maintains the ephemeral booking-reference correlation. It holds no
// authoritative possession data.
type Coordinator struct {
	ledger       Ledger
	correlations *CorrelationStore
	events       EventSink
	config       Config
	logger       *zap.Logger

	timeNow func() time.Time
}

func NewCoordinator(l Ledger, correlations *CorrelationStore, events EventSink, logger *zap.Logger, config Config) *Coordinator {
	return &Coordinator{
		ledger:       l,
		correlations: correlations,
		events:       events,
		config:       config,
		logger:       logger,
		timeNow:      time.Now,
	}
}

func (c *Coordinator) resolve(ctx context.Context, unitNumber string) (uint64, error) {
	tokenID, err := c.ledger.TokenIDByUnitNumber(ctx, unitNumber)
	if err != nil {
		return 0, fmt.Errorf("resolve %s: %w", unitNumber, err)
	}
	if tokenID == 0 {
		return 0, fmt.Errorf("container %s: %w", unitNumber, ledger.ErrNotFound)
	}
	return tokenID, nil
}

// Initiate starts a possession transfer and returns the booking
// reference. The reference is recorded and handed out only after the
// ledger has durably acknowledged the mutation: a caller never ends up
// holding a reference to a transfer the ledger rejected.
func (c *Coordinator) Initiate(ctx context.Context, caller ledger.Identity, unitNumber string, to ledger.Identity, duration time.Duration, bookingReference string) (string, *ledger.InitiateResult, error) {
	tokenID, err := c.resolve(ctx, unitNumber)
	if err != nil {
		return "", nil, err
	}

	reference := bookingReference
	if reference == "" {
		reference = GenerateBookingReference(unitNumber, c.timeNow())
	}

	c.logger.Info("initiating handoff",
		zap.String("unit_number", unitNumber),
		zap.String("to", string(to)),
		zap.String("booking_reference", reference))

	result, err := c.ledger.InitiatePossessionTransfer(ctx, caller, tokenID, to, duration)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("initiate_handoff").Inc()
		return "", nil, err
	}

	// Durably committed; the receipt version keys the correlation write
	// so a racing initiate cannot clobber a newer reference.
	c.correlations.Set(tokenID, reference, result.Receipt.Version)
	metrics.HandoffsInitiatedTotal.Inc()

	if result.Discarded != nil && result.Discarded.Status == ledger.HandoffPending && c.config.EmitDiscards {
		c.events.Emit(ctx, EventHandoffDiscarded, HandoffDiscardedEvent{
			TokenID:     tokenID,
			UnitNumber:  unitNumber,
			From:        string(result.Discarded.From),
			To:          string(result.Discarded.To),
			InitiatedAt: result.Discarded.InitiatedAt,
			Status:      result.Discarded.Status.String(),
		})
	}
	c.events.Emit(ctx, EventHandoffInitiated, HandoffInitiatedEvent{
		TokenID:          tokenID,
		UnitNumber:       unitNumber,
		From:             string(result.Handoff.From),
		To:               string(to),
		Expires:          result.Handoff.Expires,
		InitiatedAt:      result.Handoff.InitiatedAt,
		BookingReference: reference,
	})

	return reference, result, nil
}

// Confirm validates the presented reference against the live
// correlation entry, then confirms possession on the ledger. A missing
// entry (process restart lost the cache) skips reference validation:
// the real authorization is the ledger's to-address check.
func (c *Coordinator) Confirm(ctx context.Context, caller ledger.Identity, unitNumber, presentedReference, location string) (*ledger.ConfirmResult, error) {
	tokenID, err := c.resolve(ctx, unitNumber)
	if err != nil {
		return nil, err
	}

	if stored, found := c.correlations.Get(tokenID); found {
		if presentedReference != stored {
			metrics.OperationErrorsTotal.WithLabelValues("confirm_handoff").Inc()
			return nil, fmt.Errorf("container %s: %w", unitNumber, ErrInvalidReference)
		}
	} else if presentedReference != "" {
		c.logger.Warn("no correlation entry, accepting confirm without reference validation",
			zap.String("unit_number", unitNumber))
	}

	result, err := c.ledger.ConfirmPossession(ctx, caller, tokenID, location)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("confirm_handoff").Inc()
		return nil, err
	}

	c.correlations.Delete(tokenID)
	metrics.HandoffsConfirmedTotal.Inc()

	c.events.Emit(ctx, EventPossessionConfirmed, PossessionConfirmedEvent{
		TokenID:           tokenID,
		UnitNumber:        unitNumber,
		Possessor:         string(result.Possessor),
		PossessionExpires: result.PossessionExpires,
		Location:          location,
	})

	return result, nil
}

// StatusInfo is the read-side view of the pending-handoff slot,
// enriched with the booking reference when the correlation entry is
// still alive.
type StatusInfo struct {
	HasPendingHandoff bool
	TokenID           uint64
	From              ledger.Identity
	To                ledger.Identity
	Expires           time.Time
	InitiatedAt       time.Time
	Status            ledger.HandoffStatus
	BookingReference  string
}

// Status reads the pending-handoff slot for a unit number. The booking
// reference is best-effort: omitted, not an error, when the
// correlation entry is gone.
func (c *Coordinator) Status(ctx context.Context, unitNumber string) (*StatusInfo, error) {
	tokenID, err := c.resolve(ctx, unitNumber)
	if err != nil {
		return nil, err
	}

	container, err := c.ledger.GetContainer(ctx, tokenID)
	if err != nil {
		return nil, err
	}

	if container.Handoff.Status == ledger.HandoffNone {
		return &StatusInfo{HasPendingHandoff: false, TokenID: tokenID}, nil
	}

	info := &StatusInfo{
		HasPendingHandoff: true,
		TokenID:           tokenID,
		From:              container.Handoff.From,
		To:                container.Handoff.To,
		Expires:           container.Handoff.Expires,
		InitiatedAt:       container.Handoff.InitiatedAt,
		Status:            container.Handoff.Status,
	}
	if reference, found := c.correlations.Get(tokenID); found {
		info.BookingReference = reference
	}
	return info, nil
}
