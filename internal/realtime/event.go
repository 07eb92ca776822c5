// Package realtime fans order lifecycle events out to interested listeners.
package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

type Event struct {
	Type       string    `json:"type"`
	OrderID    uuid.UUID `json:"order_id"`
	BuyerID    uuid.UUID `json:"buyer_id"`
	StoreID    uuid.UUID `json:"store_id"`
	Status     string    `json:"status"`
	FromStatus string    `json:"from_status,omitempty"`
	At         time.Time `json:"at"`
}

// Bus publishes events; Subscribe delivers every event published after it
// returns until ctx is done.
type Bus interface {
	Publish(ctx context.Context, ev Event) error
	Subscribe(ctx context.Context, onEvent func(Event)) error
	Close() error
}

type memoryBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
}

// NewMemoryBus delivers events synchronously within the process.
func NewMemoryBus() Bus {
	return &memoryBus{subs: map[int]func(Event){}}
}

func (b *memoryBus) Publish(_ context.Context, ev Event) error {
	b.mu.RLock()
	subs := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
	return nil
}

func (b *memoryBus) Subscribe(ctx context.Context, onEvent func(Event)) error {
	if onEvent == nil {
		return nil
	}
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = onEvent
	b.mu.Unlock()
	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}()
	return nil
}

func (b *memoryBus) Close() error {
	b.mu.Lock()
	b.subs = map[int]func(Event){}
	b.mu.Unlock()
	return nil
}
