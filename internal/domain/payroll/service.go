package payroll

import (
	"context"
	"time"
)

// PayrollService computes dashboard figures for the owner in the JWT.
type PayrollService interface {
	// GetDashboard returns metrics, salary summary and per-driver performance
	// for the selected period.
	GetDashboard(ctx context.Context, sel PeriodSelection) (DashboardResponse, error)

	// GetWeeklyGross returns the Monday-Sunday gross grid of the week containing week.
	GetWeeklyGross(ctx context.Context, week time.Time) (WeeklyGrossResponse, error)
}
