package sse

import (
	"context"
	"sync"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
)

// Event is one server-sent event.
type Event struct {
	Name string
	Data interface{}
}

// Hub fans events out to the open streams of each owner.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a stream for userID. The returned cleanup closes the
// channel and must be called once.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[userID], ch)
		close(ch)
		if len(h.subscribers[userID]) == 0 {
			delete(h.subscribers, userID)
		}
	}

	return ch, cleanup
}

// Publish delivers event to every stream of userID. Streams whose buffer is
// full miss the event.
func (h *Hub) Publish(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[userID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// PublishBonusEvent forwards a reconciler change to the owner's streams.
func (h *Hub) PublishBonusEvent(ctx context.Context, event bonus.BonusEvent) error {
	h.Publish(event.UserID, Event{Name: event.RoutingKey(), Data: event})
	return nil
}

func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers[userID])
}
