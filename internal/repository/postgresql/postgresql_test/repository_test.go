package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/Jimmy4745/lovable-dispatch/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "owner-1"

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestDriverRepository(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewDriverRepository(db)
	ctx := context.Background()

	truck := "T-9"
	created, err := repo.Create(ctx, driver.Driver{
		UserID:      owner,
		Name:        "Alice",
		Type:        driver.DriverTypeCompany,
		TruckNumber: &truck,
		Status:      driver.StatusActive,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	inactive := string(driver.StatusInactive)
	require.NoError(t, repo.Update(ctx, owner, driver.UpdateDriverRequest{ID: created.ID, Status: &inactive}))

	got, err := repo.GetByID(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, driver.StatusInactive, got.Status)
	assert.Equal(t, "T-9", *got.TruckNumber)

	_, err = repo.GetByID(ctx, created.ID, "someone-else")
	assert.ErrorIs(t, err, driver.ErrDriverNotFound)
	_, err = repo.GetByID(ctx, "not-a-uuid", owner)
	assert.ErrorIs(t, err, driver.ErrDriverNotFound)

	owners, err := repo.ListOwners(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{owner}, owners)

	require.NoError(t, repo.Delete(ctx, created.ID, owner))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID, owner), driver.ErrDriverNotFound)
}

func TestLoadRepository_RenameInTransaction(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewLoadRepository(db)
	tx := postgresql.NewTransactor(db)
	ctx := context.Background()

	full, err := repo.Create(ctx, load.Load{
		UserID: owner, LoadID: "F-1", PickupDate: monday, DeliveryDate: monday.AddDate(0, 0, 1),
		Origin: "A", Destination: "B", Rate: decimal.NewFromInt(1000), Type: load.LoadTypeFull,
	})
	require.NoError(t, err)
	parent := "F-1"
	_, err = repo.Create(ctx, load.Load{
		UserID: owner, LoadID: "P-1", PickupDate: monday, DeliveryDate: monday,
		Origin: "A", Destination: "C", Rate: decimal.NewFromInt(200), Type: load.LoadTypePartial,
		ParentLoadID: &parent,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, load.Load{
		UserID: owner, LoadID: "F-1", PickupDate: monday, DeliveryDate: monday,
		Origin: "A", Destination: "B", Rate: decimal.NewFromInt(1), Type: load.LoadTypeFull,
	})
	assert.ErrorIs(t, err, load.ErrLoadIDExists)

	// a failing transaction leaves both rows untouched
	newID := "F-1A"
	boom := errors.New("boom")
	err = tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := repo.Update(txCtx, owner, load.UpdateLoadRequest{ID: full.ID, LoadID: &newID}); err != nil {
			return err
		}
		if err := repo.RenameParent(txCtx, owner, "F-1", newID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	count, err := repo.CountPartials(ctx, owner, "F-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	err = tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := repo.Update(txCtx, owner, load.UpdateLoadRequest{ID: full.ID, LoadID: &newID}); err != nil {
			return err
		}
		return repo.RenameParent(txCtx, owner, "F-1", newID)
	})
	require.NoError(t, err)
	count, err = repo.CountPartials(ctx, owner, newID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	inWeek, err := repo.ListByPickupRange(ctx, owner, monday, monday.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Len(t, inWeek, 2)

	exists, err := repo.ExistsByLoadID(ctx, owner, newID, &full.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = repo.ExistsByLoadID(ctx, owner, newID, nil)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBonusRepository_UpsertAutomatic(t *testing.T) {
	db := newTestDatabase(t)
	drivers := postgresql.NewDriverRepository(db)
	repo := postgresql.NewBonusRepository(db)
	ctx := context.Background()

	d, err := drivers.Create(ctx, driver.Driver{UserID: owner, Name: "Alice", Type: driver.DriverTypeCompany, Status: driver.StatusActive})
	require.NoError(t, err)

	first, err := repo.UpsertAutomatic(ctx, bonus.Bonus{
		UserID: owner, DriverID: &d.ID, Amount: decimal.NewFromInt(30), WeekStart: monday, Date: monday, Note: "tier 1",
	})
	require.NoError(t, err)
	assert.Equal(t, bonus.BonusTypeAutomatic, first.Type)

	second, err := repo.UpsertAutomatic(ctx, bonus.Bonus{
		UserID: owner, DriverID: &d.ID, Amount: decimal.NewFromInt(50), WeekStart: monday, Date: monday.AddDate(0, 0, 2), Note: "tier 2",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.Amount.Equal(decimal.NewFromInt(50)))

	_, err = repo.Create(ctx, bonus.Bonus{
		UserID: owner, DriverID: &d.ID, Type: bonus.BonusTypeManual, Amount: decimal.NewFromInt(20), WeekStart: monday, Date: monday,
	})
	require.NoError(t, err)

	automatic, err := repo.ListAutomaticByWeek(ctx, owner, monday)
	require.NoError(t, err)
	require.Len(t, automatic, 1)
	assert.Equal(t, "tier 2", automatic[0].Note)

	all, err := repo.ListByDateRange(ctx, owner, monday, monday.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
