package payroll

import (
	"testing"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestResolveEligibility(t *testing.T) {
	tests := []struct {
		name       string
		gross      string
		driverType driver.DriverType
		bonus      string
		threshold  string
	}{
		{"company zero gross", "0", driver.DriverTypeCompany, "0", "0"},
		{"company below lowest", "9999.99", driver.DriverTypeCompany, "0", "0"},
		{"company exactly lowest", "10000", driver.DriverTypeCompany, "30", "10000"},
		{"company 11000", "11000", driver.DriverTypeCompany, "50", "11000"},
		{"company 12999", "12999", driver.DriverTypeCompany, "70", "12000"},
		{"company top", "15000", driver.DriverTypeCompany, "150", "15000"},
		{"company above top", "40000", driver.DriverTypeCompany, "150", "15000"},
		{"owner operator 11000", "11000", driver.DriverTypeOwnerOperator, "0", "0"},
		{"owner operator 12999", "12999", driver.DriverTypeOwnerOperator, "0", "0"},
		{"owner operator 13000", "13000", driver.DriverTypeOwnerOperator, "50", "13000"},
		{"owner operator 14500", "14500", driver.DriverTypeOwnerOperator, "75", "14000"},
		{"owner operator top", "15000", driver.DriverTypeOwnerOperator, "100", "15000"},
		{"unknown classification", "20000", driver.DriverType("contractor"), "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ResolveEligibility(d(tt.gross), tt.driverType)
			assert.True(t, e.BonusAmount.Equal(d(tt.bonus)), "bonus: got %s", e.BonusAmount)
			assert.True(t, e.Threshold.Equal(d(tt.threshold)), "threshold: got %s", e.Threshold)
		})
	}
}

func TestResolveEligibility_Monotonic(t *testing.T) {
	for _, driverType := range []driver.DriverType{driver.DriverTypeCompany, driver.DriverTypeOwnerOperator} {
		previous := decimal.Zero
		for gross := int64(0); gross <= 20000; gross += 250 {
			e := ResolveEligibility(decimal.NewFromInt(gross), driverType)
			assert.True(t, e.BonusAmount.GreaterThanOrEqual(previous),
				"%s: bonus dropped at gross %d", driverType, gross)
			previous = e.BonusAmount
		}
	}
}

func TestResolveEligibility_NextTier(t *testing.T) {
	t.Run("below lowest tier", func(t *testing.T) {
		e := ResolveEligibility(d("5000"), driver.DriverTypeCompany)
		require.NotNil(t, e.NextThreshold)
		assert.True(t, e.NextThreshold.Equal(d("10000")))
		assert.True(t, e.NextBonus.Equal(d("30")))
		assert.True(t, e.ToNextTier.Equal(d("5000")))
		assert.InDelta(t, 50.0, e.ProgressToNext, 0.0001)
	})

	t.Run("between tiers", func(t *testing.T) {
		e := ResolveEligibility(d("11250"), driver.DriverTypeCompany)
		require.NotNil(t, e.NextThreshold)
		assert.True(t, e.NextThreshold.Equal(d("12000")))
		assert.True(t, e.ToNextTier.Equal(d("750")))
		assert.InDelta(t, 25.0, e.ProgressToNext, 0.0001)
	})

	t.Run("top tier", func(t *testing.T) {
		e := ResolveEligibility(d("16000"), driver.DriverTypeOwnerOperator)
		assert.Nil(t, e.NextThreshold)
		assert.Nil(t, e.NextBonus)
		assert.True(t, e.ToNextTier.IsZero())
		assert.Equal(t, 100.0, e.ProgressToNext)
	})
}
