package memory

import (
	"context"
	"slices"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/payroll"
)

type loadRepository struct {
	store *Store
}

func NewLoadRepository(store *Store) load.LoadRepository {
	return &loadRepository{store: store}
}

func (r *loadRepository) filter(userID string, keep func(load.Load) bool) []load.Load {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []load.Load
	for _, l := range r.store.loads {
		if l.UserID == userID && keep(l) {
			result = append(result, l)
		}
	}
	// newest pickup first, like the SQL listing
	slices.SortFunc(result, func(a, b load.Load) int {
		if c := b.PickupDate.Compare(a.PickupDate); c != 0 {
			return c
		}
		return r.store.position(b.ID) - r.store.position(a.ID)
	})
	return result
}

func (r *loadRepository) List(ctx context.Context, userID string) ([]load.Load, error) {
	return r.filter(userID, func(load.Load) bool { return true }), nil
}

func (r *loadRepository) ListByPickupRange(ctx context.Context, userID string, start, end time.Time) ([]load.Load, error) {
	period := payroll.Period{Start: start, End: end}
	return r.filter(userID, func(l load.Load) bool { return period.Contains(l.PickupDate) }), nil
}

func (r *loadRepository) ListByType(ctx context.Context, userID string, loadType load.LoadType) ([]load.Load, error) {
	return r.filter(userID, func(l load.Load) bool { return l.Type == loadType }), nil
}

func (r *loadRepository) GetByID(ctx context.Context, id string, userID string) (load.Load, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	l, ok := r.store.loads[id]
	if !ok || l.UserID != userID {
		return load.Load{}, load.ErrLoadNotFound
	}
	return l, nil
}

func (r *loadRepository) GetByLoadID(ctx context.Context, userID string, loadID string) (load.Load, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, l := range r.store.loads {
		if l.UserID == userID && l.LoadID == loadID {
			return l, nil
		}
	}
	return load.Load{}, load.ErrLoadNotFound
}

func (r *loadRepository) ExistsByLoadID(ctx context.Context, userID string, loadID string, excludeID *string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, l := range r.store.loads {
		if l.UserID != userID || l.LoadID != loadID {
			continue
		}
		if excludeID != nil && l.ID == *excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (r *loadRepository) CountPartials(ctx context.Context, userID string, parentLoadID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, l := range r.store.loads {
		if l.UserID == userID && l.ParentLoadID != nil && *l.ParentLoadID == parentLoadID {
			count++
		}
	}
	return count, nil
}

func (r *loadRepository) Create(ctx context.Context, newLoad load.Load) (load.Load, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, l := range r.store.loads {
		if l.UserID == newLoad.UserID && l.LoadID == newLoad.LoadID {
			return load.Load{}, load.ErrLoadIDExists
		}
	}

	now := time.Now()
	newLoad.ID = r.store.newID()
	newLoad.CreatedAt = now
	newLoad.UpdatedAt = now
	r.store.loads[newLoad.ID] = newLoad
	return newLoad, nil
}

func (r *loadRepository) Update(ctx context.Context, userID string, req load.UpdateLoadRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.loads[req.ID]
	if !ok || existing.UserID != userID {
		return load.ErrLoadNotFound
	}

	updated := req.Apply(existing)
	if updated.LoadID != existing.LoadID {
		for _, l := range r.store.loads {
			if l.ID != updated.ID && l.UserID == userID && l.LoadID == updated.LoadID {
				return load.ErrLoadIDExists
			}
		}
	}
	updated.UpdatedAt = time.Now()
	r.store.loads[updated.ID] = updated
	return nil
}

func (r *loadRepository) RenameParent(ctx context.Context, userID string, oldLoadID, newLoadID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, l := range r.store.loads {
		if l.UserID == userID && l.ParentLoadID != nil && *l.ParentLoadID == oldLoadID {
			renamed := newLoadID
			l.ParentLoadID = &renamed
			l.UpdatedAt = time.Now()
			r.store.loads[id] = l
		}
	}
	return nil
}

func (r *loadRepository) Delete(ctx context.Context, id string, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l, ok := r.store.loads[id]
	if !ok || l.UserID != userID {
		return load.ErrLoadNotFound
	}
	delete(r.store.loads, id)
	r.store.forget(id)
	return nil
}
