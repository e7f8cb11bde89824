package payroll

import (
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ResolveEligibility returns the highest tier of the classification whose
// threshold is at or below gross, plus the distance to the next tier.
// Below the lowest threshold the result is the zero tier (no bonus).
func ResolveEligibility(gross decimal.Decimal, driverType driver.DriverType) payroll.Eligibility {
	tiers := payroll.TiersFor(driverType)

	result := payroll.Eligibility{
		BonusAmount: decimal.Zero,
		Threshold:   decimal.Zero,
		ToNextTier:  decimal.Zero,
	}

	var next *payroll.Tier
	for i := range tiers {
		if gross.GreaterThanOrEqual(tiers[i].Threshold) {
			result.BonusAmount = tiers[i].Bonus
			result.Threshold = tiers[i].Threshold
			continue
		}
		next = &tiers[i]
		break
	}

	if next == nil {
		if len(tiers) > 0 {
			result.ProgressToNext = 100
		}
		return result
	}

	result.NextThreshold = &next.Threshold
	result.NextBonus = &next.Bonus
	result.ToNextTier = next.Threshold.Sub(gross)

	// next.Threshold is strictly above the current threshold, so neither
	// divisor can be zero.
	var progress decimal.Decimal
	if result.Threshold.IsPositive() {
		progress = gross.Sub(result.Threshold).Div(next.Threshold.Sub(result.Threshold)).Mul(hundred)
	} else {
		progress = gross.Div(next.Threshold).Mul(hundred)
	}
	result.ProgressToNext = clampPercent(progress.InexactFloat64())

	return result
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
