package payroll

import (
	"sort"
	"strings"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// WeeklyGross builds the per-day gross grid (Monday..Sunday) of every active
// driver for the calendar week containing week. Rows are ordered by truck
// number when both drivers have one, otherwise by name.
func WeeklyGross(drivers []driver.Driver, loads []load.Load, week time.Time) []payroll.WeeklyGrossRow {
	period := CalendarWeek(week)
	inWeek := LoadsInPeriod(loads, period)

	rows := make([]payroll.WeeklyGrossRow, 0, len(drivers))
	for _, d := range drivers {
		if !d.IsActive() {
			continue
		}

		row := payroll.WeeklyGrossRow{
			DriverID:    d.ID,
			DriverName:  d.Name,
			TruckNumber: d.TruckNumber,
			Days:        make([]payroll.DailyGross, 7),
			WeeklyTotal: decimal.Zero,
		}
		for i := range row.Days {
			row.Days[i] = payroll.DailyGross{
				Date:    payroll.FormatDate(period.Start.AddDate(0, 0, i)),
				Total:   decimal.Zero,
				LoadIDs: []string{},
			}
		}

		for _, l := range inWeek {
			if !l.AssignedTo(d.ID) {
				continue
			}
			day := int(payroll.Date(l.PickupDate).Sub(period.Start).Hours() / 24)
			row.Days[day].Total = row.Days[day].Total.Add(l.Rate)
			row.Days[day].LoadIDs = append(row.Days[day].LoadIDs, l.LoadID)
			row.Days[day].LoadCount++
			row.WeeklyTotal = row.WeeklyTotal.Add(l.Rate)
		}

		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := truck(rows[i].TruckNumber), truck(rows[j].TruckNumber)
		if a != "" && b != "" {
			return a < b
		}
		return strings.ToLower(rows[i].DriverName) < strings.ToLower(rows[j].DriverName)
	})

	return rows
}

func truck(n *string) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(*n)
}
