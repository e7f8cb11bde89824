package load

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoadType string

const (
	LoadTypeFull    LoadType = "FULL"
	LoadTypePartial LoadType = "PARTIAL"
)

func (t LoadType) IsValid() bool {
	return t == LoadTypeFull || t == LoadTypePartial
}

// Load is a freight movement. LoadID is the user supplied identifier and is
// unique per owner; ID is the storage key.
type Load struct {
	ID           string
	UserID       string
	LoadID       string
	PickupDate   time.Time
	DeliveryDate time.Time
	Origin       string
	Destination  string
	Rate         decimal.Decimal
	Type         LoadType
	DriverID     *string
	ParentLoadID *string // LoadID of the FULL load a PARTIAL was split from
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (l Load) IsFull() bool {
	return l.Type == LoadTypeFull
}

// AssignedTo reports whether the load belongs to the given driver.
func (l Load) AssignedTo(driverID string) bool {
	return l.DriverID != nil && *l.DriverID == driverID
}
