package driver

import "context"

// DriverRepository defines data access for drivers.
// Every method is scoped by the owner (userID) of the rows.
type DriverRepository interface {
	List(ctx context.Context, userID string) ([]Driver, error)
	GetByID(ctx context.Context, id string, userID string) (Driver, error)
	Create(ctx context.Context, newDriver Driver) (Driver, error)
	Update(ctx context.Context, userID string, req UpdateDriverRequest) error
	Delete(ctx context.Context, id string, userID string) error

	// ListOwners returns every owner that has at least one driver.
	ListOwners(ctx context.Context) ([]string, error)
}
