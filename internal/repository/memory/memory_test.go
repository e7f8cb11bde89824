package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func TestBonusRepository_UpsertAutomatic(t *testing.T) {
	repo := NewBonusRepository(NewStore())
	ctx := context.Background()
	driverID := "d-1"

	first, err := repo.UpsertAutomatic(ctx, bonus.Bonus{UserID: "u", DriverID: &driverID, Amount: decimal.NewFromInt(30), WeekStart: monday})
	require.NoError(t, err)
	second, err := repo.UpsertAutomatic(ctx, bonus.Bonus{UserID: "u", DriverID: &driverID, Amount: decimal.NewFromInt(50), WeekStart: monday.Add(5 * time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	rows, err := repo.ListAutomaticByWeek(ctx, "u", monday)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(50)))

	other, err := repo.ListAutomaticByWeek(ctx, "someone-else", monday)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestTransactor_RestoresOnError(t *testing.T) {
	store := NewStore()
	loads := NewLoadRepository(store)
	tx := NewTransactor(store)
	ctx := context.Background()

	created, err := loads.Create(ctx, load.Load{UserID: "u", LoadID: "F-1", PickupDate: monday, Type: load.LoadTypeFull})
	require.NoError(t, err)

	renamed := "F-2"
	boom := errors.New("boom")
	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, loads.Update(ctx, "u", load.UpdateLoadRequest{ID: created.ID, LoadID: &renamed}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := loads.GetByID(ctx, created.ID, "u")
	require.NoError(t, err)
	assert.Equal(t, "F-1", got.LoadID)
}

func TestLoadRepository_ListOrder(t *testing.T) {
	loads := NewLoadRepository(NewStore())
	ctx := context.Background()

	for i, day := range []int{0, 3, 1} {
		_, err := loads.Create(ctx, load.Load{UserID: "u", LoadID: string(rune('A' + i)), PickupDate: monday.AddDate(0, 0, day), Type: load.LoadTypeFull})
		require.NoError(t, err)
	}

	all, err := loads.List(ctx, "u")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"B", "C", "A"}, []string{all[0].LoadID, all[1].LoadID, all[2].LoadID})
}

func TestBonusRepository_DeleteForgetsPosition(t *testing.T) {
	store := NewStore()
	repo := NewBonusRepository(store)
	tx := NewTransactor(store)
	ctx := context.Background()

	var ids []string
	for _, amount := range []int64{10, 20, 30} {
		created, err := repo.Create(ctx, bonus.Bonus{UserID: "u", Amount: decimal.NewFromInt(amount), WeekStart: monday})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	require.NoError(t, repo.Delete(ctx, ids[1], "u"))
	assert.NotContains(t, store.seq, ids[1])
	assert.Len(t, store.seq, 2)

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Delete(ctx, ids[0], "u"))
		_, err := repo.Create(ctx, bonus.Bonus{UserID: "u", Amount: decimal.NewFromInt(40), WeekStart: monday})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, store.seq, 2)

	rows, err := repo.List(ctx, "u")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{ids[0], ids[2]}, []string{rows[0].ID, rows[1].ID})
}
