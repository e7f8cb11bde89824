package payroll

import (
	"github.com/shopspring/decimal"
)

// Metrics are the top-line figures of a period.
type Metrics struct {
	FullLoadsGross        decimal.Decimal `json:"full_loads_gross"`
	PartialLoadsGross     decimal.Decimal `json:"partial_loads_gross"`
	TotalGross            decimal.Decimal `json:"total_gross"`
	FullLoadCommission    decimal.Decimal `json:"full_load_commission"`
	PartialLoadCommission decimal.Decimal `json:"partial_load_commission"`
	LoadCount             int             `json:"load_count"`
}

// Eligibility is the highest tier a driver reached and the gap to the next one.
// A zero BonusAmount means no tier was reached.
type Eligibility struct {
	BonusAmount    decimal.Decimal  `json:"bonus_amount"`
	Threshold      decimal.Decimal  `json:"bonus_threshold"`
	NextThreshold  *decimal.Decimal `json:"next_threshold,omitempty"`
	NextBonus      *decimal.Decimal `json:"next_bonus,omitempty"`
	ToNextTier     decimal.Decimal  `json:"to_next_tier"`
	ProgressToNext float64          `json:"progress_to_next"`
}

func (e Eligibility) IsEligible() bool {
	return e.BonusAmount.IsPositive()
}

type DriverPerformance struct {
	DriverID    string          `json:"driver_id"`
	DriverName  string          `json:"driver_name"`
	DriverType  string          `json:"driver_type"`
	TruckNumber *string         `json:"truck_number,omitempty"`
	TotalGross  decimal.Decimal `json:"total_gross"`
	LoadCount   int             `json:"load_count"`
	Eligibility
}

type Summary struct {
	FullLoadCommission    decimal.Decimal `json:"full_load_commission"`
	PartialLoadCommission decimal.Decimal `json:"partial_load_commission"`
	TotalBonuses          decimal.Decimal `json:"total_bonuses"`
	TotalSalary           decimal.Decimal `json:"total_salary"`
}

type PeriodResponse struct {
	Type  string `json:"period_type"`
	Start string `json:"period_start"`
	End   string `json:"period_end"`
}

func ToPeriodResponse(p Period) PeriodResponse {
	return PeriodResponse{
		Type:  string(p.Type),
		Start: FormatDate(p.Start),
		End:   FormatDate(p.End),
	}
}

type DashboardResponse struct {
	Period            PeriodResponse      `json:"period"`
	Metrics           Metrics             `json:"metrics"`
	Summary           Summary             `json:"summary"`
	DriverPerformance []DriverPerformance `json:"driver_performance"`
	CalculatedAt      string              `json:"calculated_at"`
}

type DailyGross struct {
	Date      string          `json:"date"`
	Total     decimal.Decimal `json:"total"`
	LoadIDs   []string        `json:"load_ids"`
	LoadCount int             `json:"load_count"`
}

type WeeklyGrossRow struct {
	DriverID    string          `json:"driver_id"`
	DriverName  string          `json:"driver_name"`
	TruckNumber *string         `json:"truck_number,omitempty"`
	Days        []DailyGross    `json:"days"`
	WeeklyTotal decimal.Decimal `json:"weekly_total"`
}

type WeeklyGrossResponse struct {
	WeekStart string           `json:"week_start"`
	WeekEnd   string           `json:"week_end"`
	Rows      []WeeklyGrossRow `json:"rows"`
}
