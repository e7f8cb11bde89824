package memory

import (
	"context"
	"slices"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
)

type bonusRepository struct {
	store *Store
}

func NewBonusRepository(store *Store) bonus.BonusRepository {
	return &bonusRepository{store: store}
}

func (r *bonusRepository) filter(userID string, keep func(bonus.Bonus) bool) []bonus.Bonus {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []bonus.Bonus
	for _, b := range r.store.bonuses {
		if b.UserID == userID && keep(b) {
			result = append(result, b)
		}
	}
	slices.SortFunc(result, func(a, b bonus.Bonus) int {
		return r.store.position(a.ID) - r.store.position(b.ID)
	})
	return result
}

func (r *bonusRepository) List(ctx context.Context, userID string) ([]bonus.Bonus, error) {
	return r.filter(userID, func(bonus.Bonus) bool { return true }), nil
}

func (r *bonusRepository) ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]bonus.Bonus, error) {
	period := payroll.Period{Start: start, End: end}
	return r.filter(userID, func(b bonus.Bonus) bool { return period.Contains(b.Date) }), nil
}

func (r *bonusRepository) ListAutomaticByWeek(ctx context.Context, userID string, weekStart time.Time) ([]bonus.Bonus, error) {
	week := payroll.Date(weekStart)
	return r.filter(userID, func(b bonus.Bonus) bool {
		return b.IsAutomatic() && payroll.Date(b.WeekStart).Equal(week)
	}), nil
}

func (r *bonusRepository) GetByID(ctx context.Context, id string, userID string) (bonus.Bonus, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.bonuses[id]
	if !ok || b.UserID != userID {
		return bonus.Bonus{}, bonus.ErrBonusNotFound
	}
	return b, nil
}

func (r *bonusRepository) Create(ctx context.Context, newBonus bonus.Bonus) (bonus.Bonus, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	newBonus.ID = r.store.newID()
	newBonus.CreatedAt = time.Now()
	r.store.bonuses[newBonus.ID] = newBonus
	return newBonus, nil
}

func (r *bonusRepository) UpsertAutomatic(ctx context.Context, newBonus bonus.Bonus) (bonus.Bonus, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	week := payroll.Date(newBonus.WeekStart)
	for id, b := range r.store.bonuses {
		if b.UserID != newBonus.UserID || !b.IsAutomatic() || b.DriverID == nil || newBonus.DriverID == nil {
			continue
		}
		if *b.DriverID == *newBonus.DriverID && payroll.Date(b.WeekStart).Equal(week) {
			b.Amount = newBonus.Amount
			b.Date = newBonus.Date
			b.Note = newBonus.Note
			r.store.bonuses[id] = b
			return b, nil
		}
	}

	newBonus.Type = bonus.BonusTypeAutomatic
	newBonus.WeekStart = week
	newBonus.ID = r.store.newID()
	newBonus.CreatedAt = time.Now()
	r.store.bonuses[newBonus.ID] = newBonus
	return newBonus, nil
}

func (r *bonusRepository) Update(ctx context.Context, userID string, req bonus.UpdateBonusRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bonuses[req.ID]
	if !ok || b.UserID != userID {
		return bonus.ErrBonusNotFound
	}
	r.store.bonuses[b.ID] = req.Apply(b)
	return nil
}

func (r *bonusRepository) Delete(ctx context.Context, id string, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bonuses[id]
	if !ok || b.UserID != userID {
		return bonus.ErrBonusNotFound
	}
	delete(r.store.bonuses, id)
	r.store.forget(id)
	return nil
}
