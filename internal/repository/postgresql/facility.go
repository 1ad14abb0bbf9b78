package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/antonym0505/intermodal/internal/db"
	"github.com/antonym0505/intermodal/internal/ledger"
	"github.com/antonym0505/intermodal/internal/registry"
	"github.com/antonym0505/intermodal/internal/repository"
)

type FacilityRepo struct {
	db db.DB
}

func NewFacilityRepo(database db.DB) *FacilityRepo {
	return &FacilityRepo{db: database}
}

var _ registry.Store = (*FacilityRepo)(nil)

func facilityFromRow(row *repository.Facility) *registry.Facility {
	return &registry.Facility{
		Address:      ledger.Identity(row.Address),
		Code:         row.Code,
		Type:         registry.FacilityType(row.Type),
		Name:         row.Name,
		Location:     row.Location,
		IsActive:     row.IsActive,
		RegisteredAt: row.RegisteredAt,
	}
}

func (r *FacilityRepo) Get(ctx context.Context, address ledger.Identity) (*registry.Facility, error) {
	var row repository.Facility
	err := r.db.Get(ctx, &row, "SELECT * FROM facilities WHERE address = $1", string(address))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("address %s: %w", address, registry.ErrNotFound)
		}
		return nil, err
	}
	return facilityFromRow(&row), nil
}

func (r *FacilityRepo) Insert(ctx context.Context, f *registry.Facility) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO facilities (address, code, type, name, location, is_active, registered_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, string(f.Address), f.Code, string(f.Type), f.Name, f.Location, f.IsActive, f.RegisteredAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("address %s or code %s: %w", f.Address, f.Code, registry.ErrConflict)
		}
		return fmt.Errorf("insert facility: %w", err)
	}
	return nil
}

func (r *FacilityRepo) SetActive(ctx context.Context, address ledger.Identity, active bool) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE facilities SET is_active = $1 WHERE address = $2", active, string(address))
	if err != nil {
		return fmt.Errorf("set facility active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("address %s: %w", address, registry.ErrNotFound)
	}
	return nil
}

func (r *FacilityRepo) All(ctx context.Context) ([]registry.Facility, error) {
	var rows []*repository.Facility
	err := r.db.Select(ctx, &rows, "SELECT * FROM facilities ORDER BY registered_at ASC")
	if err != nil {
		return nil, fmt.Errorf("select facilities: %w", err)
	}

	facilities := make([]registry.Facility, len(rows))
	for i, row := range rows {
		facilities[i] = *facilityFromRow(row)
	}
	return facilities, nil
}
