package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	dom "github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/jwt"
	"github.com/Jimmy4745/lovable-dispatch/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayrollService_GetDashboard(t *testing.T) {
	store := memory.NewStore()
	drivers := memory.NewDriverRepository(store)
	loads := memory.NewLoadRepository(store)
	bonuses := memory.NewBonusRepository(store)
	ctx := jwt.WithUserID(context.Background(), "owner-1")
	bg := context.Background()

	alice, err := drivers.Create(bg, dom.Driver{UserID: "owner-1", Name: "Alice", Type: dom.DriverTypeCompany, Status: dom.StatusActive})
	require.NoError(t, err)
	_, err = drivers.Create(bg, dom.Driver{UserID: "owner-2", Name: "Other", Type: dom.DriverTypeCompany, Status: dom.StatusActive})
	require.NoError(t, err)

	for _, l := range []load.Load{
		testLoad("F-1", load.LoadTypeFull, "2025-03-10", "10000", alice.ID),
		testLoad("P-1", load.LoadTypePartial, "2025-03-11", "500", alice.ID),
		testLoad("F-2", load.LoadTypeFull, "2025-03-18", "7000", alice.ID),
	} {
		l.UserID = "owner-1"
		_, err := loads.Create(bg, l)
		require.NoError(t, err)
	}
	_, err = bonuses.Create(bg, bonus.Bonus{UserID: "owner-1", Type: bonus.BonusTypeManual, Amount: d("15"), Date: date("2025-03-14"), WeekStart: date("2025-03-10")})
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2025, 3, 20, 8, 0, 0, 0, time.UTC) }
	svc := NewPayrollService(drivers, loads, bonuses, now)

	resp, err := svc.GetDashboard(ctx, payroll.PeriodSelection{Week: date("2025-03-12")})
	require.NoError(t, err)

	assert.Equal(t, payroll.PeriodResponse{Type: "week", Start: "2025-03-10", End: "2025-03-16"}, resp.Period)
	assert.True(t, resp.Metrics.TotalGross.Equal(d("10500")))
	assert.Equal(t, 2, resp.Metrics.LoadCount)
	assert.True(t, resp.Summary.FullLoadCommission.Equal(d("100")))
	assert.True(t, resp.Summary.PartialLoadCommission.Equal(d("10")))
	assert.True(t, resp.Summary.TotalBonuses.Equal(d("15")))
	assert.True(t, resp.Summary.TotalSalary.Equal(d("125")))
	require.Len(t, resp.DriverPerformance, 1)
	assert.True(t, resp.DriverPerformance[0].BonusAmount.Equal(d("30")))
	assert.Equal(t, "2025-03-20T08:00:00Z", resp.CalculatedAt)

	custom, err := svc.GetDashboard(ctx, payroll.PeriodSelection{
		Week:           date("2025-03-12"),
		CustomRange:    &payroll.DateRange{From: date("2025-03-11"), To: date("2025-03-31")},
		UseCustomRange: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "customRange", custom.Period.Type)
	assert.True(t, custom.Metrics.TotalGross.Equal(d("7500")))
}

func TestPayrollService_InvalidRange(t *testing.T) {
	store := memory.NewStore()
	svc := NewPayrollService(memory.NewDriverRepository(store), memory.NewLoadRepository(store), memory.NewBonusRepository(store), nil)

	_, err := svc.GetDashboard(jwt.WithUserID(context.Background(), "owner-1"), payroll.PeriodSelection{
		CustomRange:    &payroll.DateRange{From: date("2025-03-20"), To: date("2025-03-01")},
		UseCustomRange: true,
	})
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestPayrollService_GetWeeklyGross(t *testing.T) {
	store := memory.NewStore()
	drivers := memory.NewDriverRepository(store)
	loads := memory.NewLoadRepository(store)
	bg := context.Background()

	alice, err := drivers.Create(bg, dom.Driver{UserID: "owner-1", Name: "Alice", Type: dom.DriverTypeCompany, Status: dom.StatusActive})
	require.NoError(t, err)
	l := testLoad("F-1", load.LoadTypeFull, "2025-03-13", "1800", alice.ID)
	l.UserID = "owner-1"
	_, err = loads.Create(bg, l)
	require.NoError(t, err)

	svc := NewPayrollService(drivers, loads, memory.NewBonusRepository(store), nil)
	resp, err := svc.GetWeeklyGross(jwt.WithUserID(bg, "owner-1"), date("2025-03-16"))
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", resp.WeekStart)
	assert.Equal(t, "2025-03-16", resp.WeekEnd)
	require.Len(t, resp.Rows, 1)
	assert.True(t, resp.Rows[0].Days[3].Total.Equal(d("1800")))
}
