package payroll

import (
	"testing"

	dom "github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyGross(t *testing.T) {
	drivers := []dom.Driver{
		{ID: "z", Name: "zed", TruckNumber: strptr("T-200"), Status: dom.StatusActive},
		{ID: "a", Name: "Amy", TruckNumber: strptr("T-100"), Status: dom.StatusActive},
		{ID: "x", Name: "Xavier", Status: dom.StatusInactive},
	}
	loads := []load.Load{
		testLoad("L-1", load.LoadTypeFull, "2025-03-10", "1000", "a"),
		testLoad("L-2", load.LoadTypePartial, "2025-03-10", "250", "a"),
		testLoad("L-3", load.LoadTypeFull, "2025-03-16", "3000", "a"),
		testLoad("L-4", load.LoadTypeFull, "2025-03-17", "9999", "a"),
		testLoad("L-5", load.LoadTypeFull, "2025-03-12", "800", "z"),
	}

	rows := WeeklyGross(drivers, loads, date("2025-03-13"))
	require.Len(t, rows, 2)

	amy := rows[0]
	assert.Equal(t, "a", amy.DriverID)
	require.Len(t, amy.Days, 7)
	assert.Equal(t, "2025-03-10", amy.Days[0].Date)
	assert.Equal(t, "2025-03-16", amy.Days[6].Date)
	assert.True(t, amy.Days[0].Total.Equal(d("1250")))
	assert.Equal(t, []string{"L-1", "L-2"}, amy.Days[0].LoadIDs)
	assert.Equal(t, 2, amy.Days[0].LoadCount)
	assert.True(t, amy.Days[6].Total.Equal(d("3000")))
	assert.True(t, amy.WeeklyTotal.Equal(d("4250")))

	assert.Equal(t, "z", rows[1].DriverID)
	assert.True(t, rows[1].Days[2].Total.Equal(d("800")))
}

func TestWeeklyGross_SortsByNameWithoutTruck(t *testing.T) {
	drivers := []dom.Driver{
		{ID: "1", Name: "charlie", Status: dom.StatusActive},
		{ID: "2", Name: "Bravo", Status: dom.StatusActive},
		{ID: "3", Name: "alpha", Status: dom.StatusActive},
	}

	rows := WeeklyGross(drivers, nil, date("2025-03-13"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"alpha", "Bravo", "charlie"}, []string{rows[0].DriverName, rows[1].DriverName, rows[2].DriverName})
	assert.True(t, rows[0].WeeklyTotal.IsZero())
	assert.Empty(t, rows[0].Days[3].LoadIDs)
}
