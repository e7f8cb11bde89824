// Package memory keeps drivers, loads and bonuses in process memory. It backs
// STORAGE_TYPE=memory and the service tests.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/database"
	"github.com/google/uuid"
)

// Store holds every table. Rows keep insertion order so listings are stable;
// seq holds the insertion position of each live row.
type Store struct {
	mu sync.RWMutex

	drivers map[string]driver.Driver
	loads   map[string]load.Load
	bonuses map[string]bonus.Bonus
	seq     map[string]int
	next    int
}

func NewStore() *Store {
	return &Store{
		drivers: make(map[string]driver.Driver),
		loads:   make(map[string]load.Load),
		bonuses: make(map[string]bonus.Bonus),
		seq:     make(map[string]int),
	}
}

func (s *Store) newID() string {
	id := uuid.Must(uuid.NewV7()).String()
	s.seq[id] = s.next
	s.next++
	return id
}

// forget drops the position of a deleted row.
func (s *Store) forget(id string) {
	delete(s.seq, id)
}

func (s *Store) position(id string) int {
	return s.seq[id]
}

type snapshot struct {
	drivers map[string]driver.Driver
	loads   map[string]load.Load
	bonuses map[string]bonus.Bonus
	seq     map[string]int
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		drivers: maps.Clone(s.drivers),
		loads:   maps.Clone(s.loads),
		bonuses: maps.Clone(s.bonuses),
		seq:     maps.Clone(s.seq),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drivers = snap.drivers
	s.loads = snap.loads
	s.bonuses = snap.bonuses
	s.seq = snap.seq
}

type transactor struct {
	store *Store
}

// NewTransactor returns a transactor that restores the store when fn fails.
// Concurrent writers are not isolated from each other.
func NewTransactor(store *Store) database.Transactor {
	return &transactor{store: store}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}
