package payroll

import (
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
)

// WeekStart returns the Monday of the calendar week containing t.
func WeekStart(t time.Time) time.Time {
	d := payroll.Date(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// CalendarWeek returns Monday through Sunday of the week containing t,
// independent of locale.
func CalendarWeek(t time.Time) payroll.Period {
	start := WeekStart(t)
	return payroll.Period{
		Type:  payroll.PeriodTypeWeek,
		Start: start,
		End:   start.AddDate(0, 0, 6),
	}
}

// ResolvePeriod turns a selection into the period the dashboard filters by.
// An active custom range wins; an active flag without a range falls back to
// the selected week.
func ResolvePeriod(sel payroll.PeriodSelection) payroll.Period {
	if sel.UseCustomRange && sel.CustomRange != nil {
		return payroll.Period{
			Type:  payroll.PeriodTypeCustomRange,
			Start: payroll.Date(sel.CustomRange.From),
			End:   payroll.Date(sel.CustomRange.To),
		}
	}
	return CalendarWeek(sel.Week)
}

// BonusWeek is the calendar week automatic bonuses are computed for: the
// Monday-Sunday week containing the start of the active period, never the
// custom range itself.
func BonusWeek(sel payroll.PeriodSelection) payroll.Period {
	return CalendarWeek(ResolvePeriod(sel).Start)
}
