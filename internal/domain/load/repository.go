package load

import (
	"context"
	"time"
)

// LoadRepository defines data access for loads, scoped by owner.
type LoadRepository interface {
	List(ctx context.Context, userID string) ([]Load, error)
	ListByPickupRange(ctx context.Context, userID string, start, end time.Time) ([]Load, error)
	ListByType(ctx context.Context, userID string, loadType LoadType) ([]Load, error)
	GetByID(ctx context.Context, id string, userID string) (Load, error)
	GetByLoadID(ctx context.Context, userID string, loadID string) (Load, error)

	// ExistsByLoadID reports whether loadID is taken, ignoring the row excludeID
	// when it is set (renames).
	ExistsByLoadID(ctx context.Context, userID string, loadID string, excludeID *string) (bool, error)
	CountPartials(ctx context.Context, userID string, parentLoadID string) (int, error)

	Create(ctx context.Context, newLoad Load) (Load, error)
	Update(ctx context.Context, userID string, req UpdateLoadRequest) error
	RenameParent(ctx context.Context, userID string, oldLoadID, newLoadID string) error
	Delete(ctx context.Context, id string, userID string) error
}
