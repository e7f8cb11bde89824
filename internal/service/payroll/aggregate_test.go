package payroll

import (
	"testing"

	dom "github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func testLoad(loadID string, loadType load.LoadType, pickup string, rate string, driverID string) load.Load {
	l := load.Load{
		ID:           "id-" + loadID,
		LoadID:       loadID,
		PickupDate:   date(pickup),
		DeliveryDate: date(pickup).AddDate(0, 0, 1),
		Rate:         d(rate),
		Type:         loadType,
	}
	if driverID != "" {
		l.DriverID = strptr(driverID)
	}
	return l
}

func TestAggregateRevenue_Commission(t *testing.T) {
	week := CalendarWeek(date("2025-03-12"))
	loads := []load.Load{
		testLoad("F-1", load.LoadTypeFull, "2025-03-10", "2000", ""),
		testLoad("P-1", load.LoadTypePartial, "2025-03-16", "500", ""),
	}

	m := AggregateRevenue(loads, week)

	assert.True(t, m.FullLoadsGross.Equal(d("2000")))
	assert.True(t, m.PartialLoadsGross.Equal(d("500")))
	assert.True(t, m.TotalGross.Equal(d("2500")))
	assert.True(t, m.FullLoadCommission.Equal(d("20")))
	assert.True(t, m.PartialLoadCommission.Equal(d("10")))
	assert.Equal(t, 2, m.LoadCount)
}

func TestAggregateRevenue_FiltersByPickupDate(t *testing.T) {
	week := CalendarWeek(date("2025-03-12"))
	loads := []load.Load{
		testLoad("F-1", load.LoadTypeFull, "2025-03-09", "1000", ""),
		testLoad("F-2", load.LoadTypeFull, "2025-03-11", "1500", ""),
		testLoad("F-3", load.LoadTypeFull, "2025-03-17", "3000", ""),
	}

	m := AggregateRevenue(loads, week)
	assert.True(t, m.TotalGross.Equal(d("1500")))
	assert.Equal(t, 1, m.LoadCount)
}

func TestAggregateRevenue_Empty(t *testing.T) {
	m := AggregateRevenue(nil, CalendarWeek(date("2025-03-12")))

	assert.True(t, m.TotalGross.IsZero())
	assert.True(t, m.FullLoadCommission.IsZero())
	assert.Zero(t, m.LoadCount)
}

func TestDriverPerformance(t *testing.T) {
	week := CalendarWeek(date("2025-03-12"))
	drivers := []dom.Driver{
		{ID: "a", Name: "Alice", Type: dom.DriverTypeCompany, Status: dom.StatusActive},
		{ID: "b", Name: "Bob", Type: dom.DriverTypeOwnerOperator, Status: dom.StatusActive},
		{ID: "c", Name: "Carl", Type: dom.DriverTypeCompany, Status: dom.StatusInactive},
	}
	loads := []load.Load{
		testLoad("L-1", load.LoadTypeFull, "2025-03-10", "6000", "a"),
		testLoad("L-2", load.LoadTypePartial, "2025-03-12", "5000", "a"),
		testLoad("L-3", load.LoadTypeFull, "2025-03-12", "11000", "b"),
		testLoad("L-4", load.LoadTypeFull, "2025-03-03", "9000", "a"),
		testLoad("L-5", load.LoadTypeFull, "2025-03-12", "20000", "c"),
		testLoad("L-6", load.LoadTypeFull, "2025-03-12", "700", ""),
	}

	perf := DriverPerformance(drivers, loads, week)
	require.Len(t, perf, 2)

	assert.Equal(t, "a", perf[0].DriverID)
	assert.True(t, perf[0].TotalGross.Equal(d("11000")))
	assert.Equal(t, 2, perf[0].LoadCount)
	assert.True(t, perf[0].BonusAmount.Equal(d("50")))

	assert.Equal(t, "b", perf[1].DriverID)
	assert.True(t, perf[1].TotalGross.Equal(d("11000")))
	assert.False(t, perf[1].IsEligible())
}
