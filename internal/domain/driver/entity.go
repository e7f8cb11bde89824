package driver

import "time"

// DriverType is the driver classification. It selects the bonus tier table.
type DriverType string

const (
	DriverTypeCompany       DriverType = "company_driver"
	DriverTypeOwnerOperator DriverType = "owner_operator"
)

func (t DriverType) IsValid() bool {
	return t == DriverTypeCompany || t == DriverTypeOwnerOperator
}

// Label returns the human readable classification used in bonus notes.
func (t DriverType) Label() string {
	switch t {
	case DriverTypeOwnerOperator:
		return "Owner-operator"
	case DriverTypeCompany:
		return "Company driver"
	default:
		return string(t)
	}
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

type Driver struct {
	ID          string
	UserID      string
	Name        string
	Type        DriverType
	TruckNumber *string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (d Driver) IsActive() bool {
	return d.Status == StatusActive
}
