package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultQueueSize = 100

	writeTimeout = 5 * time.Second
)

type Event struct {
	ActorID  string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Dispatcher writes audit events from a single background worker. A full
// queue drops the event; audit never blocks or fails a request.
type Dispatcher struct {
	store Store
	log   *zap.Logger
	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(store Store, log *zap.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}

	d := &Dispatcher{
		store: store,
		log:   log.Named("audit"),
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		entry := Entry(ev)

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := d.store.Write(ctx, &entry)
		cancel()

		if err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.String("entity_id", ev.EntityID),
				zap.Error(err),
			)
		}
	}
}

// Dispatch is safe on a nil Dispatcher and after Close.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
