package payroll

import (
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// TotalBonuses sums manual and automatic bonuses dated inside the period.
func TotalBonuses(bonuses []bonus.Bonus, period payroll.Period) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bonuses {
		if period.Contains(b.Date) {
			total = total.Add(b.Amount)
		}
	}
	return total
}

// Summarize folds commission and bonuses into the salary of the period.
func Summarize(metrics payroll.Metrics, bonuses []bonus.Bonus, period payroll.Period) payroll.Summary {
	totalBonuses := TotalBonuses(bonuses, period)
	return payroll.Summary{
		FullLoadCommission:    metrics.FullLoadCommission,
		PartialLoadCommission: metrics.PartialLoadCommission,
		TotalBonuses:          totalBonuses,
		TotalSalary:           metrics.FullLoadCommission.Add(metrics.PartialLoadCommission).Add(totalBonuses),
	}
}
