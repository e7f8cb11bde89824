package payroll

import (
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var (
	FullLoadCommissionRate    = decimal.RequireFromString("0.01")
	PartialLoadCommissionRate = decimal.RequireFromString("0.02")
)

// LoadsInPeriod keeps the loads whose pickup date lies in the period.
func LoadsInPeriod(loads []load.Load, period payroll.Period) []load.Load {
	var result []load.Load
	for _, l := range loads {
		if period.Contains(l.PickupDate) {
			result = append(result, l)
		}
	}
	return result
}

// AggregateRevenue computes gross and commission per load type over the loads
// picked up inside the period.
func AggregateRevenue(loads []load.Load, period payroll.Period) payroll.Metrics {
	fullGross := decimal.Zero
	partialGross := decimal.Zero
	count := 0

	for _, l := range loads {
		if !period.Contains(l.PickupDate) {
			continue
		}
		count++
		switch l.Type {
		case load.LoadTypeFull:
			fullGross = fullGross.Add(l.Rate)
		case load.LoadTypePartial:
			partialGross = partialGross.Add(l.Rate)
		}
	}

	return payroll.Metrics{
		FullLoadsGross:        fullGross,
		PartialLoadsGross:     partialGross,
		TotalGross:            fullGross.Add(partialGross),
		FullLoadCommission:    fullGross.Mul(FullLoadCommissionRate),
		PartialLoadCommission: partialGross.Mul(PartialLoadCommissionRate),
		LoadCount:             count,
	}
}

// DriverPerformance computes gross, load count and bonus eligibility of every
// active driver over the loads picked up inside the period. Drivers keep the
// order they were given in.
func DriverPerformance(drivers []driver.Driver, loads []load.Load, period payroll.Period) []payroll.DriverPerformance {
	inPeriod := LoadsInPeriod(loads, period)

	result := make([]payroll.DriverPerformance, 0, len(drivers))
	for _, d := range drivers {
		if !d.IsActive() {
			continue
		}

		gross := decimal.Zero
		count := 0
		for _, l := range inPeriod {
			if l.AssignedTo(d.ID) {
				gross = gross.Add(l.Rate)
				count++
			}
		}

		result = append(result, payroll.DriverPerformance{
			DriverID:    d.ID,
			DriverName:  d.Name,
			DriverType:  string(d.Type),
			TruckNumber: d.TruckNumber,
			TotalGross:  gross,
			LoadCount:   count,
			Eligibility: ResolveEligibility(gross, d.Type),
		})
	}
	return result
}
