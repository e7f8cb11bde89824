package bonus

import (
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateBonusRequest struct {
	DriverID  *string         `json:"driver_id,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	WeekStart string          `json:"week_start"`
	Date      string          `json:"date"`
	Note      string          `json:"note"`
}

func (r *CreateBonusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}
	if _, ok := validator.IsValidDate(r.WeekStart); !ok {
		errs = append(errs, validator.ValidationError{Field: "week_start", Message: "must be in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.DriverID != nil && validator.IsEmpty(*r.DriverID) {
		r.DriverID = nil
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateBonusRequest struct {
	ID        string           `json:"-"`
	DriverID  *string          `json:"driver_id,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	WeekStart *string          `json:"week_start,omitempty"`
	Date      *string          `json:"date,omitempty"`
	Note      *string          `json:"note,omitempty"`
}

func (r *UpdateBonusRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID == "" {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.Amount != nil && !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}
	if r.WeekStart != nil {
		if _, ok := validator.IsValidDate(*r.WeekStart); !ok {
			errs = append(errs, validator.ValidationError{Field: "week_start", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply returns b with the request's fields applied. An empty DriverID makes
// the bonus company-wide. Dates must have been validated first.
func (r UpdateBonusRequest) Apply(b Bonus) Bonus {
	if r.DriverID != nil {
		if *r.DriverID == "" {
			b.DriverID = nil
		} else {
			driverID := *r.DriverID
			b.DriverID = &driverID
		}
	}
	if r.Amount != nil {
		b.Amount = *r.Amount
	}
	if r.WeekStart != nil {
		b.WeekStart, _ = time.Parse("2006-01-02", *r.WeekStart)
	}
	if r.Date != nil {
		b.Date, _ = time.Parse("2006-01-02", *r.Date)
	}
	if r.Note != nil {
		b.Note = *r.Note
	}
	return b
}

type BonusResponse struct {
	ID        string          `json:"id"`
	DriverID  *string         `json:"driver_id,omitempty"`
	BonusType string          `json:"bonus_type"`
	Amount    decimal.Decimal `json:"amount"`
	WeekStart string          `json:"week_start"`
	Date      string          `json:"date"`
	Note      string          `json:"note"`
	CreatedAt string          `json:"created_at"`
}

func ToResponse(b Bonus) BonusResponse {
	return BonusResponse{
		ID:        b.ID,
		DriverID:  b.DriverID,
		BonusType: string(b.Type),
		Amount:    b.Amount,
		WeekStart: b.WeekStart.Format("2006-01-02"),
		Date:      b.Date.Format("2006-01-02"),
		Note:      b.Note,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}
