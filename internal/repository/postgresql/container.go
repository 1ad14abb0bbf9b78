package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/antonym0505/intermodal/internal/db"
	"github.com/antonym0505/intermodal/internal/ledger"
	"github.com/antonym0505/intermodal/internal/repository"
)

const uniqueViolation = "23505"

// ContainerRepo is the postgres ledger substrate. Commits use an
// optimistic version column: the UPDATE carries the expected version
// in its WHERE clause, so a concurrent writer makes RowsAffected zero
// and the caller sees a version conflict.
type ContainerRepo struct {
	db db.DB
}

func NewContainerRepo(database db.DB) *ContainerRepo {
	return &ContainerRepo{db: database}
}

var _ ledger.Store = (*ContainerRepo)(nil)

func toRow(c *ledger.Container) *repository.Container {
	row := &repository.Container{
		TokenID:        c.TokenID,
		UnitNumber:     c.UnitNumber,
		ISOType:        c.ISOType,
		OwnerCode:      c.OwnerCode,
		TareWeight:     c.TareWeight,
		MaxGrossWeight: c.MaxGrossWeight,
		RegisteredAt:   c.RegisteredAt,
		Owner:          string(c.Owner),
		Possessor:      string(c.Possessor),
		HandoffFrom:    string(c.Handoff.From),
		HandoffTo:      string(c.Handoff.To),
		HandoffStatus:  int16(c.Handoff.Status),
	}
	if !c.PossessionExpires.IsZero() {
		t := c.PossessionExpires
		row.PossessionExpires = &t
	}
	if !c.Handoff.Expires.IsZero() {
		t := c.Handoff.Expires
		row.HandoffExpires = &t
	}
	if !c.Handoff.InitiatedAt.IsZero() {
		t := c.Handoff.InitiatedAt
		row.HandoffInitiated = &t
	}
	return row
}

func fromRow(row *repository.Container) *ledger.Container {
	c := &ledger.Container{
		TokenID:        row.TokenID,
		UnitNumber:     row.UnitNumber,
		ISOType:        row.ISOType,
		OwnerCode:      row.OwnerCode,
		TareWeight:     row.TareWeight,
		MaxGrossWeight: row.MaxGrossWeight,
		RegisteredAt:   row.RegisteredAt,
		Owner:          ledger.Identity(row.Owner),
		Possessor:      ledger.Identity(row.Possessor),
		Handoff: ledger.PendingHandoff{
			From:   ledger.Identity(row.HandoffFrom),
			To:     ledger.Identity(row.HandoffTo),
			Status: ledger.HandoffStatus(row.HandoffStatus),
		},
	}
	if row.PossessionExpires != nil {
		c.PossessionExpires = *row.PossessionExpires
	}
	if row.HandoffExpires != nil {
		c.Handoff.Expires = *row.HandoffExpires
	}
	if row.HandoffInitiated != nil {
		c.Handoff.InitiatedAt = *row.HandoffInitiated
	}
	return c
}

func (r *ContainerRepo) Get(ctx context.Context, tokenID uint64) (*ledger.Container, uint64, error) {
	var row repository.Container
	err := r.db.Get(ctx, &row, "SELECT * FROM containers WHERE token_id = $1", tokenID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, fmt.Errorf("token %d: %w", tokenID, ledger.ErrNotFound)
		}
		return nil, 0, err
	}
	return fromRow(&row), row.Version, nil
}

func (r *ContainerRepo) TokenIDByUnitNumber(ctx context.Context, unitNumber string) (uint64, error) {
	var tokenID uint64
	err := r.db.ExecQueryRow(ctx,
		"SELECT token_id FROM containers WHERE unit_number = $1", unitNumber).Scan(&tokenID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return tokenID, nil
}

func (r *ContainerRepo) Insert(ctx context.Context, c *ledger.Container) (uint64, ledger.Receipt, error) {
	row := toRow(c)

	var tokenID uint64
	err := r.db.ExecQueryRow(ctx, `
        INSERT INTO containers (
            unit_number, iso_type, owner_code, tare_weight, max_gross_weight,
            registered_at, owner, possessor, possession_expires,
            handoff_from, handoff_to, handoff_expires, handoff_initiated_at, handoff_status,
            version
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 1)
        RETURNING token_id
    `, row.UnitNumber, row.ISOType, row.OwnerCode, row.TareWeight, row.MaxGrossWeight,
		row.RegisteredAt, row.Owner, row.Possessor, row.PossessionExpires,
		row.HandoffFrom, row.HandoffTo, row.HandoffExpires, row.HandoffInitiated, row.HandoffStatus,
	).Scan(&tokenID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, ledger.Receipt{}, fmt.Errorf("unit number %s: %w", c.UnitNumber, ledger.ErrConflict)
		}
		return 0, ledger.Receipt{}, fmt.Errorf("insert container: %w", err)
	}

	c.TokenID = tokenID
	return tokenID, ledger.Receipt{Version: 1, CommittedAt: time.Now().UTC()}, nil
}

func (r *ContainerRepo) ApplyIfCurrentMatches(ctx context.Context, tokenID, expectedVersion uint64, mutate ledger.Mutation) (ledger.Receipt, error) {
	current, version, err := r.Get(ctx, tokenID)
	if err != nil {
		return ledger.Receipt{}, err
	}
	if version != expectedVersion {
		return ledger.Receipt{}, fmt.Errorf("token %d at version %d, expected %d: %w", tokenID, version, expectedVersion, ledger.ErrVersionConflict)
	}

	mutate(current)
	row := toRow(current)

	tag, err := r.db.Exec(ctx, `
        UPDATE containers
        SET
            possessor = $1,
            possession_expires = $2,
            handoff_from = $3,
            handoff_to = $4,
            handoff_expires = $5,
            handoff_initiated_at = $6,
            handoff_status = $7,
            version = version + 1
        WHERE token_id = $8 AND version = $9
    `, row.Possessor, row.PossessionExpires,
		row.HandoffFrom, row.HandoffTo, row.HandoffExpires, row.HandoffInitiated, row.HandoffStatus,
		tokenID, expectedVersion)
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("commit container %d: %w", tokenID, err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.Receipt{}, fmt.Errorf("token %d moved past version %d: %w", tokenID, expectedVersion, ledger.ErrVersionConflict)
	}

	return ledger.Receipt{Version: expectedVersion + 1, CommittedAt: time.Now().UTC()}, nil
}
