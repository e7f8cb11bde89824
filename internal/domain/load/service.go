package load

import (
	"context"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
)

// LoadService defines load operations. Every mutation is followed by an
// automatic bonus reconciliation of the calendar week the selection starts in.
type LoadService interface {
	List(ctx context.Context, filter LoadFilter) ([]LoadResponse, error)
	Get(ctx context.Context, id string) (LoadResponse, error)
	Create(ctx context.Context, req CreateLoadRequest, sel payroll.PeriodSelection) (LoadResponse, error)
	Update(ctx context.Context, req UpdateLoadRequest, sel payroll.PeriodSelection) (LoadResponse, error)
	Delete(ctx context.Context, id string, sel payroll.PeriodSelection) error

	LoadIDExists(ctx context.Context, loadID string) (bool, error)

	// ListFullLoads lists the loads a partial load can be attached to.
	ListFullLoads(ctx context.Context) ([]LoadResponse, error)
}
