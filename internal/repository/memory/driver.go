package memory

import (
	"context"
	"slices"
	"time"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
)

type driverRepository struct {
	store *Store
}

func NewDriverRepository(store *Store) driver.DriverRepository {
	return &driverRepository{store: store}
}

func (r *driverRepository) List(ctx context.Context, userID string) ([]driver.Driver, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []driver.Driver
	for _, d := range r.store.drivers {
		if d.UserID == userID {
			result = append(result, d)
		}
	}
	r.sort(result)
	return result, nil
}

func (r *driverRepository) sort(drivers []driver.Driver) {
	slices.SortFunc(drivers, func(a, b driver.Driver) int {
		return r.store.position(a.ID) - r.store.position(b.ID)
	})
}

func (r *driverRepository) GetByID(ctx context.Context, id string, userID string) (driver.Driver, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	d, ok := r.store.drivers[id]
	if !ok || d.UserID != userID {
		return driver.Driver{}, driver.ErrDriverNotFound
	}
	return d, nil
}

func (r *driverRepository) Create(ctx context.Context, newDriver driver.Driver) (driver.Driver, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	newDriver.ID = r.store.newID()
	newDriver.CreatedAt = now
	newDriver.UpdatedAt = now
	r.store.drivers[newDriver.ID] = newDriver
	return newDriver, nil
}

func (r *driverRepository) Update(ctx context.Context, userID string, req driver.UpdateDriverRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	d, ok := r.store.drivers[req.ID]
	if !ok || d.UserID != userID {
		return driver.ErrDriverNotFound
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Type != nil {
		d.Type = driver.DriverType(*req.Type)
	}
	if req.TruckNumber != nil {
		d.TruckNumber = req.TruckNumber
		if *req.TruckNumber == "" {
			d.TruckNumber = nil
		}
	}
	if req.Status != nil {
		d.Status = driver.Status(*req.Status)
	}
	d.UpdatedAt = time.Now()
	r.store.drivers[d.ID] = d
	return nil
}

func (r *driverRepository) Delete(ctx context.Context, id string, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	d, ok := r.store.drivers[id]
	if !ok || d.UserID != userID {
		return driver.ErrDriverNotFound
	}
	delete(r.store.drivers, id)
	r.store.forget(id)
	return nil
}

func (r *driverRepository) ListOwners(ctx context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	seen := make(map[string]bool)
	var owners []string
	for _, d := range r.store.drivers {
		if !seen[d.UserID] {
			seen[d.UserID] = true
			owners = append(owners, d.UserID)
		}
	}
	slices.Sort(owners)
	return owners, nil
}
