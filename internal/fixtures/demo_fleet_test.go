package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/repository/memory"
	bonusService "github.com/Jimmy4745/lovable-dispatch/internal/service/bonus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDemoFleet(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	drivers := memory.NewDriverRepository(store)
	loads := memory.NewLoadRepository(store)
	bonuses := memory.NewBonusRepository(store)
	weekStart := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	seeded, err := SeedDemoFleet(ctx, drivers, loads, "demo", weekStart)
	require.NoError(t, err)
	assert.True(t, seeded)

	storedDrivers, err := drivers.List(ctx, "demo")
	require.NoError(t, err)
	assert.Len(t, storedDrivers, len(GetDemoDrivers("demo")))

	storedLoads, err := loads.List(ctx, "demo")
	require.NoError(t, err)
	assert.Len(t, storedLoads, len(demoLoads))
	for _, l := range storedLoads {
		assert.False(t, l.PickupDate.Before(weekStart), l.LoadID)
		assert.True(t, l.PickupDate.Before(weekStart.AddDate(0, 0, 7)), l.LoadID)
	}

	again, err := SeedDemoFleet(ctx, drivers, loads, "demo", weekStart)
	require.NoError(t, err)
	assert.False(t, again)

	reconciler := bonusService.NewReconciler(bonuses, nil, func() time.Time { return weekStart })
	result, err := bonusService.ReconcileOwner(ctx, reconciler, loads, drivers, "demo", weekStart)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)

	automatic, err := bonuses.ListAutomaticByWeek(ctx, "demo", weekStart)
	require.NoError(t, err)
	require.Len(t, automatic, 2)
	for _, b := range automatic {
		assert.Equal(t, bonus.BonusTypeAutomatic, b.Type)
		assert.True(t, b.Amount.Equal(decimal.NewFromInt(50)), b.Amount.String())
	}
}
