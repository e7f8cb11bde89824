package payroll

import (
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/shopspring/decimal"
)

// Tier pairs a weekly gross threshold with the bonus it pays.
type Tier struct {
	Threshold decimal.Decimal
	Bonus     decimal.Decimal
}

func tier(threshold, bonus int64) Tier {
	return Tier{Threshold: decimal.NewFromInt(threshold), Bonus: decimal.NewFromInt(bonus)}
}

// Tier tables, ascending by threshold.
var (
	ownerOperatorTiers = []Tier{
		tier(13000, 50),
		tier(14000, 75),
		tier(15000, 100),
	}

	companyDriverTiers = []Tier{
		tier(10000, 30),
		tier(11000, 50),
		tier(12000, 70),
		tier(13000, 90),
		tier(14000, 110),
		tier(15000, 150),
	}

	tierTables = map[driver.DriverType][]Tier{
		driver.DriverTypeOwnerOperator: ownerOperatorTiers,
		driver.DriverTypeCompany:       companyDriverTiers,
	}
)

// TiersFor returns a copy of the tier table of a classification, or nil for an
// unknown classification.
func TiersFor(t driver.DriverType) []Tier {
	tiers, ok := tierTables[t]
	if !ok {
		return nil
	}
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}
