package bonus

import (
	"context"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
)

// BonusService defines user facing bonus operations (owner taken from JWT).
type BonusService interface {
	// List returns bonuses whose date falls inside the selected period.
	List(ctx context.Context, sel payroll.PeriodSelection) ([]BonusResponse, error)
	Create(ctx context.Context, req CreateBonusRequest) (BonusResponse, error)
	Update(ctx context.Context, req UpdateBonusRequest) (BonusResponse, error)
	Delete(ctx context.Context, id string) error

	// Reconcile runs an automatic bonus pass for the calendar week the
	// selection starts in, against the owner's current loads.
	Reconcile(ctx context.Context, sel payroll.PeriodSelection) (ReconcileResult, error)
}
