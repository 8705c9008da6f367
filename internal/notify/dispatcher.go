package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultQueueSize = 100

	sendTimeout = 15 * time.Second
)

// Dispatcher sends messages from a background worker. Delivery is fire and
// forget: failures are logged and a full queue drops the message.
type Dispatcher struct {
	sender Sender
	log    *zap.Logger
	queue  chan Message
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sender Sender, log *zap.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}

	d := &Dispatcher{
		sender: sender,
		log:    log.Named("notify"),
		queue:  make(chan Message, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := d.sender.Send(ctx, msg)
		cancel()

		if err != nil {
			d.log.Warn("notification failed",
				zap.String("reference", msg.Reference),
				zap.String("subject", msg.Subject),
				zap.Error(err),
			)
		}
	}
}

// Notify is safe on a nil Dispatcher and after Close.
func (d *Dispatcher) Notify(msg Message) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- msg:
	default:
		d.log.Warn("notify queue full, dropping message", zap.String("reference", msg.Reference))
	}
}

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
