package driver

import "context"

// DriverService defines fleet operations (owner taken from JWT)
type DriverService interface {
	List(ctx context.Context) ([]DriverResponse, error)
	Get(ctx context.Context, id string) (DriverResponse, error)
	Create(ctx context.Context, req CreateDriverRequest) (DriverResponse, error)
	Update(ctx context.Context, req UpdateDriverRequest) (DriverResponse, error)

	// Delete removes the driver only; loads and bonuses keep their reference.
	Delete(ctx context.Context, id string) error
}
