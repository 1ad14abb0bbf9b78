package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_db "github.com/antonym0505/intermodal/internal/db/mocks"
	"github.com/antonym0505/intermodal/internal/ledger"
	"github.com/antonym0505/intermodal/internal/registry"
	"github.com/antonym0505/intermodal/internal/repository"
	"github.com/antonym0505/intermodal/internal/repository/postgresql"
)

func testFacilityRow() repository.Facility {
	return repository.Facility{
		Address:      "0xPORT_X",
		Code:         "NLRTM",
		Type:         "PORT",
		Name:         "Port X",
		Location:     "Rotterdam",
		IsActive:     true,
		RegisteredAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFacilityRepo_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewFacilityRepo(mockDB)

		mockDB.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("0xPORT_X")).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				*dest.(*repository.Facility) = testFacilityRow()
				return nil
			})

		facility, err := repo.Get(ctx, ledger.Identity("0xPORT_X"))
		require.NoError(t, err)
		assert.Equal(t, "NLRTM", facility.Code)
		assert.Equal(t, registry.FacilityPort, facility.Type)
		assert.True(t, facility.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewFacilityRepo(mockDB)

		mockDB.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		_, err := repo.Get(ctx, ledger.Identity("0xNOBODY"))
		assert.ErrorIs(t, err, registry.ErrNotFound)
	})
}

func TestFacilityRepo_Insert(t *testing.T) {
	ctx := context.Background()

	facility := &registry.Facility{
		Address:      "0xPORT_X",
		Code:         "NLRTM",
		Type:         registry.FacilityPort,
		Name:         "Port X",
		Location:     "Rotterdam",
		IsActive:     true,
		RegisteredAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewFacilityRepo(mockDB)

		mockDB.EXPECT().
			Exec(gomock.Any(), gomock.Any(),
				gomock.Eq("0xPORT_X"), gomock.Eq("NLRTM"), gomock.Eq("PORT"),
				gomock.Any(), gomock.Any(), gomock.Eq(true), gomock.Any()).
			Return(pgconn.CommandTag("INSERT 0 1"), nil)

		assert.NoError(t, repo.Insert(ctx, facility))
	})

	t.Run("unique violation maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewFacilityRepo(mockDB)

		mockDB.EXPECT().
			Exec(gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any()).
			Return(nil, &pgconn.PgError{Code: "23505"})

		assert.ErrorIs(t, repo.Insert(ctx, facility), registry.ErrConflict)
	})
}

func TestFacilityRepo_SetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewFacilityRepo(mockDB)

		mockDB.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Eq(false), gomock.Eq("0xPORT_X")).
			Return(pgconn.CommandTag("UPDATE 1"), nil)

		assert.NoError(t, repo.SetActive(ctx, ledger.Identity("0xPORT_X"), false))
	})

	t.Run("unknown address", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_db.NewMockDB(ctrl)
		repo := postgresql.NewFacilityRepo(mockDB)

		mockDB.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		assert.ErrorIs(t, repo.SetActive(ctx, ledger.Identity("0xNOBODY"), false), registry.ErrNotFound)
	})
}

func TestFacilityRepo_All(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_db.NewMockDB(ctrl)
	repo := postgresql.NewFacilityRepo(mockDB)

	mockDB.EXPECT().
		Select(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
			row := testFacilityRow()
			*dest.(*[]*repository.Facility) = []*repository.Facility{&row}
			return nil
		})

	facilities, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, facilities, 1)
	assert.Equal(t, ledger.Identity("0xPORT_X"), facilities[0].Address)
}
