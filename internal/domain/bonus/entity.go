package bonus

import (
	"time"

	"github.com/shopspring/decimal"
)

type BonusType string

const (
	// BonusTypeAutomatic rows are derived from eligibility and owned by the reconciler.
	BonusTypeAutomatic BonusType = "automatic"
	// BonusTypeManual rows are entered by a user and never touched by reconciliation.
	BonusTypeManual BonusType = "manual"
)

type Bonus struct {
	ID        string
	UserID    string
	DriverID  *string // nil for company-wide bonuses
	Type      BonusType
	Amount    decimal.Decimal
	WeekStart time.Time
	Date      time.Time
	Note      string
	CreatedAt time.Time
}

func (b Bonus) IsAutomatic() bool {
	return b.Type == BonusTypeAutomatic
}
