package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_db "github.com/antonym0505/intermodal/internal/db/mocks"
	"github.com/antonym0505/intermodal/internal/ledger"
	"github.com/antonym0505/intermodal/internal/repository"
	"github.com/antonym0505/intermodal/internal/repository/postgresql"
)

// rowStub satisfies pgx.Row for ExecQueryRow expectations.
type rowStub struct {
	values []interface{}
	err    error
}

func (r rowStub) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch target := d.(type) {
		case *uint64:
			*target = r.values[i].(uint64)
		case *int:
			*target = r.values[i].(int)
		case *string:
			*target = r.values[i].(string)
		}
	}
	return nil
}

func testContainerRow() repository.Container {
	registered := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return repository.Container{
		TokenID:        1,
		UnitNumber:     "MSKU1234567",
		ISOType:        "22G1",
		OwnerCode:      "MSKU",
		TareWeight:     2200,
		MaxGrossWeight: 30480,
		RegisteredAt:   registered,
		Owner:          "0xOWNER_A",
		HandoffStatus:  int16(ledger.HandoffNone),
		Version:        3,
	}
}

func TestContainerRepo_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewContainerRepo(mockDB)

		mockDB.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(uint64(1))).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				*dest.(*repository.Container) = testContainerRow()
				return nil
			})

		container, version, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), version)
		assert.Equal(t, "MSKU1234567", container.UnitNumber)
		assert.Equal(t, ledger.Identity("0xOWNER_A"), container.Owner)
		assert.True(t, container.Possessor.IsZero())
		assert.True(t, container.PossessionExpires.IsZero())
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewContainerRepo(mockDB)

		mockDB.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		_, _, err := repo.Get(ctx, 42)
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})
}

func TestContainerRepo_TokenIDByUnitNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewContainerRepo(mockDB)

		mockDB.EXPECT().
			ExecQueryRow(gomock.Any(), gomock.Any(), gomock.Eq("MSKU1234567")).
			Return(rowStub{values: []interface{}{uint64(7)}})

		tokenID, err := repo.TokenIDByUnitNumber(ctx, "MSKU1234567")
		require.NoError(t, err)
		assert.Equal(t, uint64(7), tokenID)
	})

	t.Run("missing resolves to zero, not an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewContainerRepo(mockDB)

		mockDB.EXPECT().
			ExecQueryRow(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(rowStub{err: pgx.ErrNoRows})

		tokenID, err := repo.TokenIDByUnitNumber(ctx, "TCLU7654321")
		require.NoError(t, err)
		assert.Zero(t, tokenID)
	})
}

func TestContainerRepo_Insert(t *testing.T) {
	ctx := context.Background()

	container := &ledger.Container{
		UnitNumber:     "MSKU1234567",
		ISOType:        "22G1",
		OwnerCode:      "MSKU",
		TareWeight:     2200,
		MaxGrossWeight: 30480,
		RegisteredAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Owner:          "0xOWNER_A",
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewContainerRepo(mockDB)

		mockDB.EXPECT().
			ExecQueryRow(gomock.Any(), gomock.Any(),
				gomock.Eq("MSKU1234567"), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any()).
			Return(rowStub{values: []interface{}{uint64(5)}})

		fresh := *container
		tokenID, receipt, err := repo.Insert(ctx, &fresh)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), tokenID)
		assert.Equal(t, uint64(5), fresh.TokenID)
		assert.Equal(t, uint64(1), receipt.Version)
	})

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewContainerRepo(mockDB)

		mockDB.EXPECT().
			ExecQueryRow(gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any()).
			Return(rowStub{err: &pgconn.PgError{Code: "23505"}})

		fresh := *container
		_, _, err := repo.Insert(ctx, &fresh)
		assert.ErrorIs(t, err, ledger.ErrConflict)
	})
}

func TestContainerRepo_ApplyIfCurrentMatches(t *testing.T) {
	ctx := context.Background()

	t.Run("matching version commits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewContainerRepo(mockDB)

		mockDB.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(uint64(1))).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				*dest.(*repository.Container) = testContainerRow()
				return nil
			})
		mockDB.EXPECT().
			Exec(gomock.Any(), gomock.Any(),
				gomock.Eq("0xPORT_X"), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Eq(uint64(1)), gomock.Eq(uint64(3))).
			Return(pgconn.CommandTag("UPDATE 1"), nil)

		receipt, err := repo.ApplyIfCurrentMatches(ctx, 1, 3, func(c *ledger.Container) {
			c.Possessor = "0xPORT_X"
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(4), receipt.Version)
	})

	t.Run("stale expectation fails before the update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewContainerRepo(mockDB)

		mockDB.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				*dest.(*repository.Container) = testContainerRow()
				return nil
			})

		_, err := repo.ApplyIfCurrentMatches(ctx, 1, 2, func(c *ledger.Container) {})
		assert.ErrorIs(t, err, ledger.ErrVersionConflict)
	})

	t.Run("concurrent writer detected by the update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewContainerRepo(mockDB)

		mockDB.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				*dest.(*repository.Container) = testContainerRow()
				return nil
			})
		mockDB.EXPECT().
			Exec(gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		_, err := repo.ApplyIfCurrentMatches(ctx, 1, 3, func(c *ledger.Container) {})
		assert.ErrorIs(t, err, ledger.ErrVersionConflict)
	})

	t.Run("database error passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewContainerRepo(mockDB)

		dbErr := errors.New("connection reset")
		mockDB.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(dbErr)

		_, err := repo.ApplyIfCurrentMatches(ctx, 1, 3, func(c *ledger.Container) {})
		assert.ErrorIs(t, err, dbErr)
	})
}
