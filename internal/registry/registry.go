//go:generate mockgen -source ./registry.go -destination=./mocks/registry.go -package=mock_registry
package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/antonym0505/intermodal/internal/ledger"
)

// Store is the persistence behind the registry. Insert must reject a
// duplicate address or code with ErrConflict; Get signals an unknown
// address with ErrNotFound. Records are never deleted.
type Store interface {
	Get(ctx context.Context, address ledger.Identity) (*Facility, error)
	Insert(ctx context.Context, f *Facility) error
	SetActive(ctx context.Context, address ledger.Identity, active bool) error
	All(ctx context.Context) ([]Facility, error)
}

// Registry is the authoritative set of facilities. Registration and
// activation are administrative; activity checks are open reads.
type Registry struct {
	store    Store
	operator ledger.Identity
	logger   *zap.Logger

	timeNow func() time.Time
}

func New(store Store, operator ledger.Identity, logger *zap.Logger) *Registry {
	return &Registry{
		store:    store,
		operator: operator,
		logger:   logger,
		timeNow:  time.Now,
	}
}

func (r *Registry) checkAdmin(caller ledger.Identity) error {
	if r.operator.IsZero() {
		return ErrUnconfigured
	}
	if caller != r.operator {
		return ErrUnauthorized
	}
	return nil
}

// RegisterFacility creates an active record. Re-registering an address
// is rejected, never merged.
func (r *Registry) RegisterFacility(ctx context.Context, caller, address ledger.Identity, code string, facilityType FacilityType, name, location string) (*Facility, error) {
	if err := r.checkAdmin(caller); err != nil {
		return nil, fmt.Errorf("register facility: %w", err)
	}
	if address.IsZero() {
		return nil, fmt.Errorf("%w: facility address is empty", ErrValidation)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: facility code is empty", ErrValidation)
	}
	if _, err := ParseFacilityType(string(facilityType)); err != nil {
		return nil, err
	}

	facility := &Facility{
		Address:      address,
		Code:         code,
		Type:         facilityType,
		Name:         name,
		Location:     location,
		IsActive:     true,
		RegisteredAt: r.timeNow().UTC(),
	}

	if err := r.store.Insert(ctx, facility); err != nil {
		return nil, fmt.Errorf("register facility %s: %w", code, err)
	}

	r.logger.Info("facility registered",
		zap.String("address", string(address)),
		zap.String("code", code),
		zap.String("type", string(facilityType)))

	return facility, nil
}

func (r *Registry) GetFacility(ctx context.Context, address ledger.Identity) (*Facility, error) {
	return r.store.Get(ctx, address)
}

// IsFacility reports whether the address is registered AND active.
// This is the predicate the ledger uses to validate destinations.
func (r *Registry) IsFacility(ctx context.Context, address ledger.Identity) (bool, error) {
	facility, err := r.store.Get(ctx, address)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return facility.IsActive, nil
}

// IsRegistered reports whether the address was ever registered,
// regardless of the active flag.
func (r *Registry) IsRegistered(ctx context.Context, address ledger.Identity) (bool, error) {
	_, err := r.store.Get(ctx, address)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SetActive toggles the active flag without deleting the record.
func (r *Registry) SetActive(ctx context.Context, caller, address ledger.Identity, active bool) error {
	if err := r.checkAdmin(caller); err != nil {
		return fmt.Errorf("set facility active: %w", err)
	}

	if err := r.store.SetActive(ctx, address, active); err != nil {
		return fmt.Errorf("set facility %s active=%t: %w", address, active, err)
	}

	r.logger.Info("facility active flag changed",
		zap.String("address", string(address)),
		zap.Bool("active", active))

	return nil
}

// GetAllFacilities returns every record ever registered, active and
// inactive, in registration order.
func (r *Registry) GetAllFacilities(ctx context.Context) ([]Facility, error) {
	return r.store.All(ctx)
}
