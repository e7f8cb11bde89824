package payroll

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

type PeriodType string

const (
	PeriodTypeWeek        PeriodType = "week"
	PeriodTypeCustomRange PeriodType = "customRange"
)

// Period is an inclusive range of calendar days.
type Period struct {
	Type  PeriodType
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar day of t lies within the period,
// both ends included.
func (p Period) Contains(t time.Time) bool {
	d := Date(t)
	return !d.Before(Date(p.Start)) && !d.After(Date(p.End))
}

// DateRange is an explicit custom range picked by the user.
type DateRange struct {
	From time.Time
	To   time.Time
}

// PeriodSelection is what the dashboard is currently looking at: a week and,
// optionally, a custom range that overrides it while UseCustomRange is set.
type PeriodSelection struct {
	Week           time.Time
	CustomRange    *DateRange
	UseCustomRange bool
}

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
