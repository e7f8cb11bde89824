package driver

import (
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/validator"
)

type CreateDriverRequest struct {
	Name        string  `json:"driver_name"`
	Type        string  `json:"driver_type"`
	TruckNumber *string `json:"truck_number,omitempty"`
	Status      string  `json:"status"`
}

// Validate checks the request and fills the defaults (company driver, active).
func (r *CreateDriverRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "driver_name", Message: "is required"})
	}
	if r.Type == "" {
		r.Type = string(DriverTypeCompany)
	}
	if !DriverType(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "driver_type", Message: "must be 'company_driver' or 'owner_operator'"})
	}
	if r.Status == "" {
		r.Status = string(StatusActive)
	}
	if !Status(r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active' or 'inactive'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDriverRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"driver_name,omitempty"`
	Type        *string `json:"driver_type,omitempty"`
	TruckNumber *string `json:"truck_number,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (r *UpdateDriverRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID == "" {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "driver_name", Message: "cannot be empty"})
	}
	if r.Type != nil && !DriverType(*r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "driver_type", Message: "must be 'company_driver' or 'owner_operator'"})
	}
	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active' or 'inactive'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DriverResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"driver_name"`
	Type        string  `json:"driver_type"`
	TruckNumber *string `json:"truck_number,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

func ToResponse(d Driver) DriverResponse {
	return DriverResponse{
		ID:          d.ID,
		Name:        d.Name,
		Type:        string(d.Type),
		TruckNumber: d.TruckNumber,
		Status:      string(d.Status),
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}
