//go:generate mockgen -source ./ledger.go -destination=./mocks/ledger.go -package=mock_ledger
package ledger

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"
)

var unitNumberPattern = regexp.MustCompile(`^[A-Z]{4}\d{7}$`)

// FacilityChecker answers whether an identity is a registered, active
// facility. Satisfied by the facility registry.
type FacilityChecker interface {
	IsFacility(ctx context.Context, address Identity) (bool, error)
}

type Config struct {
	// MinHandoffDuration is the minimum accepted possession duration.
	// Defaults to one hour.
	MinHandoffDuration time.Duration

	// EnforceHandoffExpiry rejects confirms arriving after the pending
	// handoff's expiry. Off by default: the reference behavior treats
	// the expiry as advisory on confirm.
	EnforceHandoffExpiry bool

	// MaxCommitRetries bounds re-validation retries after a version
	// conflict. Defaults to 3.
	MaxCommitRetries int
}

// Ledger is the possession handoff state machine over a Store. All
// authorization rules live here; the store only provides atomic
// apply-if-version-matches commits.
type Ledger struct {
	store      Store
	facilities FacilityChecker
	operator   Identity
	config     Config
	logger     *zap.Logger

	timeNow func() time.Time
}

func New(store Store, facilities FacilityChecker, operator Identity, logger *zap.Logger, config Config) *Ledger {
	if config.MinHandoffDuration <= 0 {
		config.MinHandoffDuration = time.Hour
	}
	if config.MaxCommitRetries <= 0 {
		config.MaxCommitRetries = 3
	}
	return &Ledger{
		store:      store,
		facilities: facilities,
		operator:   operator,
		config:     config,
		logger:     logger,
		timeNow:    time.Now,
	}
}

// WriteEnabled reports whether mutating operations are available.
func (l *Ledger) WriteEnabled() bool { return !l.operator.IsZero() }

func (l *Ledger) checkWritable() error {
	if !l.WriteEnabled() {
		return ErrUnconfigured
	}
	return nil
}

// RegisterContainer mints a new container record. Administrative: the
// caller must be the configured operator. The unit number must follow
// ISO 6346 owner+serial format and be unique across the ledger.
func (l *Ledger) RegisterContainer(ctx context.Context, caller, owner Identity, unitNumber, isoType, ownerCode string, tareWeight, maxGrossWeight int64) (uint64, Receipt, error) {
	if err := l.checkWritable(); err != nil {
		return 0, Receipt{}, err
	}
	if caller != l.operator {
		return 0, Receipt{}, fmt.Errorf("register container: %w", ErrUnauthorized)
	}
	if owner.IsZero() {
		return 0, Receipt{}, fmt.Errorf("%w: owner identity is empty", ErrValidation)
	}
	if !unitNumberPattern.MatchString(unitNumber) {
		return 0, Receipt{}, fmt.Errorf("%w: unit number %q is not ISO 6346", ErrValidation, unitNumber)
	}
	if tareWeight < 0 || maxGrossWeight < 0 {
		return 0, Receipt{}, fmt.Errorf("%w: weights must be non-negative", ErrValidation)
	}

	container := &Container{
		UnitNumber:     unitNumber,
		ISOType:        isoType,
		OwnerCode:      ownerCode,
		TareWeight:     tareWeight,
		MaxGrossWeight: maxGrossWeight,
		RegisteredAt:   l.timeNow().UTC(),
		Owner:          owner,
		Possessor:      NoIdentity,
		Handoff:        PendingHandoff{Status: HandoffNone},
	}

	tokenID, receipt, err := l.store.Insert(ctx, container)
	if err != nil {
		return 0, Receipt{}, fmt.Errorf("register container %s: %w", unitNumber, err)
	}

	l.logger.Info("container registered",
		zap.Uint64("token_id", tokenID),
		zap.String("unit_number", unitNumber),
		zap.String("owner", string(owner)))

	return tokenID, receipt, nil
}

// GetContainer returns a copy of the container record.
func (l *Ledger) GetContainer(ctx context.Context, tokenID uint64) (*Container, error) {
	container, _, err := l.store.Get(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	return container, nil
}

// TokenIDByUnitNumber resolves a unit number; 0 means not registered.
func (l *Ledger) TokenIDByUnitNumber(ctx context.Context, unitNumber string) (uint64, error) {
	return l.store.TokenIDByUnitNumber(ctx, unitNumber)
}

func (l *Ledger) GetPossessionInfo(ctx context.Context, tokenID uint64) (PossessionInfo, error) {
	container, _, err := l.store.Get(ctx, tokenID)
	if err != nil {
		return PossessionInfo{}, err
	}
	return PossessionInfo{
		Owner:             container.Owner,
		Possessor:         container.Possessor,
		PossessionExpires: container.PossessionExpires,
	}, nil
}

// UserOf answers "who physically holds this container now".
func (l *Ledger) UserOf(ctx context.Context, tokenID uint64) (Identity, error) {
	container, _, err := l.store.Get(ctx, tokenID)
	if err != nil {
		return NoIdentity, err
	}
	return container.Holder(), nil
}

// OwnerOf returns the legal owner, unaffected by any handoff.
func (l *Ledger) OwnerOf(ctx context.Context, tokenID uint64) (Identity, error) {
	container, _, err := l.store.Get(ctx, tokenID)
	if err != nil {
		return NoIdentity, err
	}
	return container.Owner, nil
}

// InitiatePossessionTransfer writes a fresh PENDING slot. The caller
// must be the current holder (possessor if set, else owner) and the
// destination must be an active registered facility. Any prior slot,
// pending or confirmed, is overwritten.
func (l *Ledger) InitiatePossessionTransfer(ctx context.Context, caller Identity, tokenID uint64, to Identity, duration time.Duration) (*InitiateResult, error) {
	if err := l.checkWritable(); err != nil {
		return nil, err
	}
	if to.IsZero() {
		return nil, fmt.Errorf("%w: destination identity is empty", ErrValidation)
	}
	if duration < l.config.MinHandoffDuration {
		return nil, fmt.Errorf("%w: duration %s below minimum %s", ErrValidation, duration, l.config.MinHandoffDuration)
	}

	var result *InitiateResult
	receipt, err := l.commitWithRetry(ctx, tokenID, func(container *Container, version uint64) (Mutation, error) {
		if caller != container.Holder() {
			return nil, fmt.Errorf("initiate: caller %s is not the current holder: %w", caller, ErrUnauthorized)
		}

		active, err := l.facilities.IsFacility(ctx, to)
		if err != nil {
			return nil, fmt.Errorf("initiate: facility check for %s: %w", to, err)
		}
		if !active {
			return nil, fmt.Errorf("initiate: destination %s: %w", to, ErrNotAuthorizedFacility)
		}

		now := l.timeNow().UTC()
		handoff := PendingHandoff{
			From:        container.Holder(),
			To:          to,
			Expires:     now.Add(duration),
			InitiatedAt: now,
			Status:      HandoffPending,
		}

		var discarded *PendingHandoff
		if container.Handoff.Status != HandoffNone {
			prior := container.Handoff
			discarded = &prior
		}

		result = &InitiateResult{
			TokenID:   tokenID,
			Handoff:   handoff,
			Discarded: discarded,
		}
		return func(c *Container) {
			c.Handoff = handoff
		}, nil
	})
	if err != nil {
		return nil, err
	}
	result.Receipt = receipt

	if result.Discarded != nil && result.Discarded.Status == HandoffPending {
		l.logger.Warn("pending handoff discarded by re-initiate",
			zap.Uint64("token_id", tokenID),
			zap.String("discarded_to", string(result.Discarded.To)))
	}
	l.logger.Info("possession transfer initiated",
		zap.Uint64("token_id", tokenID),
		zap.String("from", string(result.Handoff.From)),
		zap.String("to", string(to)),
		zap.Time("expires", result.Handoff.Expires))

	return result, nil
}

// ConfirmPossession advances a PENDING slot to CONFIRMED and moves
// possession to the addressed facility. Only the slot's `to` identity
// may confirm. The slot is kept as a historical marker.
func (l *Ledger) ConfirmPossession(ctx context.Context, caller Identity, tokenID uint64, location string) (*ConfirmResult, error) {
	if err := l.checkWritable(); err != nil {
		return nil, err
	}

	var result *ConfirmResult
	receipt, err := l.commitWithRetry(ctx, tokenID, func(container *Container, version uint64) (Mutation, error) {
		if container.Handoff.Status != HandoffPending {
			return nil, fmt.Errorf("confirm: %w", ErrInvalidState)
		}
		if caller != container.Handoff.To {
			return nil, fmt.Errorf("confirm: caller %s is not the addressed facility: %w", caller, ErrNotAuthorizedFacility)
		}
		if l.config.EnforceHandoffExpiry && l.timeNow().After(container.Handoff.Expires) {
			return nil, fmt.Errorf("confirm: handoff expired at %s: %w", container.Handoff.Expires.Format(time.RFC3339), ErrInvalidState)
		}

		possessor := container.Handoff.To
		expires := container.Handoff.Expires
		result = &ConfirmResult{
			TokenID:           tokenID,
			Possessor:         possessor,
			PossessionExpires: expires,
			Location:          location,
		}
		return func(c *Container) {
			c.Possessor = possessor
			c.PossessionExpires = expires
			c.Handoff.Status = HandoffConfirmed
		}, nil
	})
	if err != nil {
		return nil, err
	}
	result.Receipt = receipt

	l.logger.Info("possession confirmed",
		zap.Uint64("token_id", tokenID),
		zap.String("possessor", string(result.Possessor)),
		zap.String("location", location))

	return result, nil
}

// commitWithRetry runs the read-validate-commit cycle, re-reading and
// re-validating after each version conflict. Validation failures are
// terminal; only ErrVersionConflict triggers another attempt.
func (l *Ledger) commitWithRetry(ctx context.Context, tokenID uint64, prepare func(c *Container, version uint64) (Mutation, error)) (Receipt, error) {
	var lastErr error
	for attempt := 0; attempt < l.config.MaxCommitRetries; attempt++ {
		container, version, err := l.store.Get(ctx, tokenID)
		if err != nil {
			return Receipt{}, err
		}

		mutate, err := prepare(container, version)
		if err != nil {
			return Receipt{}, err
		}

		receipt, err := l.store.ApplyIfCurrentMatches(ctx, tokenID, version, mutate)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return Receipt{}, err
		}
		lastErr = err
		l.logger.Debug("commit conflict, retrying",
			zap.Uint64("token_id", tokenID),
			zap.Int("attempt", attempt+1))
	}
	return Receipt{}, fmt.Errorf("commit after %d attempts: %w", l.config.MaxCommitRetries, lastErr)
}
