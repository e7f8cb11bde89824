package fixtures

import (
	"context"
	"fmt"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

// ==========================================
// DEMO DRIVERS
// ==========================================

// GetDemoDrivers returns a small mixed fleet for userID.
func GetDemoDrivers(userID string) []driver.Driver {
	return []driver.Driver{
		{UserID: userID, Name: "Alex Carter", Type: driver.DriverTypeCompany, TruckNumber: strPtr("101"), Status: driver.StatusActive},
		{UserID: userID, Name: "Maria Lopez", Type: driver.DriverTypeCompany, TruckNumber: strPtr("102"), Status: driver.StatusActive},
		{UserID: userID, Name: "Sam Whitfield", Type: driver.DriverTypeOwnerOperator, TruckNumber: strPtr("201"), Status: driver.StatusActive},
		{UserID: userID, Name: "Dana Brooks", Type: driver.DriverTypeCompany, Status: driver.StatusInactive},
	}
}

// ==========================================
// DEMO LOADS
// ==========================================

type demoLoad struct {
	loadID      string
	dayOffset   int
	origin      string
	destination string
	rate        string
	loadType    load.LoadType
	driver      int
	parent      string
}

// Week of loads for the first three demo drivers. Alex crosses the 11k tier,
// Sam the 13k owner-operator tier and Maria stays below every tier.
var demoLoads = []demoLoad{
	{"DL-1001", 0, "Dallas, TX", "Atlanta, GA", "4200", load.LoadTypeFull, 0, ""},
	{"DL-1002", 2, "Atlanta, GA", "Chicago, IL", "3900", load.LoadTypeFull, 0, ""},
	{"DL-1002-A", 3, "Chicago, IL", "Detroit, MI", "1150", load.LoadTypePartial, 0, "DL-1002"},
	{"DL-1003", 4, "Detroit, MI", "Dallas, TX", "2300", load.LoadTypeFull, 0, ""},
	{"DL-2001", 1, "Phoenix, AZ", "Denver, CO", "3100", load.LoadTypeFull, 1, ""},
	{"DL-2002", 3, "Denver, CO", "Phoenix, AZ", "2800", load.LoadTypeFull, 1, ""},
	{"DL-3001", 0, "Los Angeles, CA", "Seattle, WA", "6900", load.LoadTypeFull, 2, ""},
	{"DL-3002", 4, "Seattle, WA", "Los Angeles, CA", "6400", load.LoadTypeFull, 2, ""},
}

// GetDemoLoads returns the demo loads of the week starting weekStart,
// assigned to drivers (as returned by storage, in GetDemoDrivers order).
func GetDemoLoads(userID string, weekStart time.Time, drivers []driver.Driver) []load.Load {
	loads := make([]load.Load, 0, len(demoLoads))
	for _, d := range demoLoads {
		pickup := weekStart.AddDate(0, 0, d.dayOffset)
		l := load.Load{
			UserID:       userID,
			LoadID:       d.loadID,
			PickupDate:   pickup,
			DeliveryDate: pickup.AddDate(0, 0, 1),
			Origin:       d.origin,
			Destination:  d.destination,
			Rate:         decimal.RequireFromString(d.rate),
			Type:         d.loadType,
		}
		if d.driver < len(drivers) {
			l.DriverID = strPtr(drivers[d.driver].ID)
		}
		if d.parent != "" {
			l.ParentLoadID = strPtr(d.parent)
		}
		loads = append(loads, l)
	}
	return loads
}

// SeedDemoFleet stores the demo drivers and the loads of the week starting
// weekStart for userID. Owners that already have drivers are left alone; the
// returned flag reports whether anything was written.
func SeedDemoFleet(ctx context.Context, driverRepo driver.DriverRepository, loadRepo load.LoadRepository, userID string, weekStart time.Time) (bool, error) {
	existing, err := driverRepo.List(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to list drivers: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	var drivers []driver.Driver
	for _, d := range GetDemoDrivers(userID) {
		created, err := driverRepo.Create(ctx, d)
		if err != nil {
			return false, fmt.Errorf("failed to seed driver %s: %w", d.Name, err)
		}
		drivers = append(drivers, created)
	}

	for _, l := range GetDemoLoads(userID, weekStart, drivers) {
		if _, err := loadRepo.Create(ctx, l); err != nil {
			return false, fmt.Errorf("failed to seed load %s: %w", l.LoadID, err)
		}
	}
	return true, nil
}
