package load

import (
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateLoadRequest struct {
	LoadID       string          `json:"load_id"`
	PickupDate   string          `json:"pickup_date"`
	DeliveryDate string          `json:"delivery_date"`
	Origin       string          `json:"origin"`
	Destination  string          `json:"destination"`
	Rate         decimal.Decimal `json:"rate"`
	LoadType     string          `json:"load_type"`
	DriverID     *string         `json:"driver_id,omitempty"`
	ParentLoadID *string         `json:"parent_load_id,omitempty"`
}

func (r *CreateLoadRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LoadID) {
		errs = append(errs, validator.ValidationError{Field: "load_id", Message: "is required"})
	}
	pickup, pickupOK := validator.IsValidDate(r.PickupDate)
	if !pickupOK {
		errs = append(errs, validator.ValidationError{Field: "pickup_date", Message: "must be in YYYY-MM-DD format"})
	}
	delivery, deliveryOK := validator.IsValidDate(r.DeliveryDate)
	if !deliveryOK {
		errs = append(errs, validator.ValidationError{Field: "delivery_date", Message: "must be in YYYY-MM-DD format"})
	}
	if pickupOK && deliveryOK && delivery.Before(pickup) {
		errs = append(errs, validator.ValidationError{Field: "delivery_date", Message: "cannot be before pickup_date"})
	}
	if validator.IsEmpty(r.Origin) {
		errs = append(errs, validator.ValidationError{Field: "origin", Message: "is required"})
	}
	if validator.IsEmpty(r.Destination) {
		errs = append(errs, validator.ValidationError{Field: "destination", Message: "is required"})
	}
	if r.Rate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "rate", Message: "must be non-negative"})
	}
	if !LoadType(r.LoadType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "load_type", Message: "must be 'FULL' or 'PARTIAL'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateLoadRequest is a partial update. A nil field is left untouched; an
// empty DriverID unassigns the load and ClearParent removes the parent
// reference.
type UpdateLoadRequest struct {
	ID           string           `json:"-"`
	LoadID       *string          `json:"load_id,omitempty"`
	PickupDate   *string          `json:"pickup_date,omitempty"`
	DeliveryDate *string          `json:"delivery_date,omitempty"`
	Origin       *string          `json:"origin,omitempty"`
	Destination  *string          `json:"destination,omitempty"`
	Rate         *decimal.Decimal `json:"rate,omitempty"`
	LoadType     *string          `json:"load_type,omitempty"`
	DriverID     *string          `json:"driver_id,omitempty"`
	ParentLoadID *string          `json:"parent_load_id,omitempty"`
	ClearParent  bool             `json:"-"`
}

func (r *UpdateLoadRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID == "" {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.LoadID != nil && validator.IsEmpty(*r.LoadID) {
		errs = append(errs, validator.ValidationError{Field: "load_id", Message: "cannot be empty"})
	}
	if r.PickupDate != nil {
		if _, ok := validator.IsValidDate(*r.PickupDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "pickup_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.DeliveryDate != nil {
		if _, ok := validator.IsValidDate(*r.DeliveryDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "delivery_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.Origin != nil && validator.IsEmpty(*r.Origin) {
		errs = append(errs, validator.ValidationError{Field: "origin", Message: "cannot be empty"})
	}
	if r.Destination != nil && validator.IsEmpty(*r.Destination) {
		errs = append(errs, validator.ValidationError{Field: "destination", Message: "cannot be empty"})
	}
	if r.Rate != nil && r.Rate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "rate", Message: "must be non-negative"})
	}
	if r.LoadType != nil && !LoadType(*r.LoadType).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "load_type", Message: "must be 'FULL' or 'PARTIAL'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply returns l with the request's fields applied. Dates must have been
// validated first.
func (r UpdateLoadRequest) Apply(l Load) Load {
	if r.LoadID != nil {
		l.LoadID = *r.LoadID
	}
	if r.PickupDate != nil {
		l.PickupDate, _ = time.Parse("2006-01-02", *r.PickupDate)
	}
	if r.DeliveryDate != nil {
		l.DeliveryDate, _ = time.Parse("2006-01-02", *r.DeliveryDate)
	}
	if r.Origin != nil {
		l.Origin = *r.Origin
	}
	if r.Destination != nil {
		l.Destination = *r.Destination
	}
	if r.Rate != nil {
		l.Rate = *r.Rate
	}
	if r.LoadType != nil {
		l.Type = LoadType(*r.LoadType)
	}
	if r.DriverID != nil {
		l.DriverID = r.DriverID
		if *r.DriverID == "" {
			l.DriverID = nil
		}
	}
	if r.ParentLoadID != nil {
		l.ParentLoadID = r.ParentLoadID
	}
	if r.ClearParent {
		l.ParentLoadID = nil
	}
	return l
}

type LoadFilter struct {
	PickupFrom *time.Time
	PickupTo   *time.Time
}

type LoadResponse struct {
	ID           string          `json:"id"`
	LoadID       string          `json:"load_id"`
	PickupDate   string          `json:"pickup_date"`
	DeliveryDate string          `json:"delivery_date"`
	Origin       string          `json:"origin"`
	Destination  string          `json:"destination"`
	Rate         decimal.Decimal `json:"rate"`
	LoadType     string          `json:"load_type"`
	DriverID     *string         `json:"driver_id,omitempty"`
	ParentLoadID *string         `json:"parent_load_id,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

func ToResponse(l Load) LoadResponse {
	return LoadResponse{
		ID:           l.ID,
		LoadID:       l.LoadID,
		PickupDate:   l.PickupDate.Format("2006-01-02"),
		DeliveryDate: l.DeliveryDate.Format("2006-01-02"),
		Origin:       l.Origin,
		Destination:  l.Destination,
		Rate:         l.Rate,
		LoadType:     string(l.Type),
		DriverID:     l.DriverID,
		ParentLoadID: l.ParentLoadID,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
}

func ToResponses(loads []Load) []LoadResponse {
	result := make([]LoadResponse, 0, len(loads))
	for _, l := range loads {
		result = append(result, ToResponse(l))
	}
	return result
}
