package bonus

import (
	"context"
	"time"
)

// BonusRepository defines data access for bonuses, scoped by owner.
type BonusRepository interface {
	List(ctx context.Context, userID string) ([]Bonus, error)
	ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]Bonus, error)

	// ListAutomaticByWeek returns the automatic bonuses whose week equals weekStart.
	ListAutomaticByWeek(ctx context.Context, userID string, weekStart time.Time) ([]Bonus, error)
	GetByID(ctx context.Context, id string, userID string) (Bonus, error)
	Create(ctx context.Context, newBonus Bonus) (Bonus, error)

	// UpsertAutomatic inserts an automatic bonus, or overwrites amount, date and
	// note of the existing one for the same driver and week.
	UpsertAutomatic(ctx context.Context, newBonus Bonus) (Bonus, error)
	Update(ctx context.Context, userID string, req UpdateBonusRequest) error
	Delete(ctx context.Context, id string, userID string) error
}

// EventPublisher receives automatic bonus changes made by the reconciler.
type EventPublisher interface {
	PublishBonusEvent(ctx context.Context, event BonusEvent) error
}
