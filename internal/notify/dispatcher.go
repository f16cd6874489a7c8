package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/crime-detection/internal/models"
)

const (
	queueSize    = 100
	writeTimeout = 5 * time.Second
)

type Event struct {
	UserID uuid.UUID
	Title  string
	Body   string
}

// Store persists notifications; the notification repository satisfies
// it.
type Store interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
}

// Dispatcher writes system notifications off the request path.
type Dispatcher struct {
	store Store
	log   *zap.Logger
	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(store Store, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		store: store,
		log:   log,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := d.store.CreateNotification(ctx, &models.Notification{
			UserID: ev.UserID,
			Title:  ev.Title,
			Body:   ev.Body,
		})
		cancel()
		if err != nil {
			d.log.Error("notification write failed",
				zap.String("user_id", ev.UserID.String()),
				zap.Error(err),
			)
		}
	}
}

// Dispatch never blocks the caller: a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("notification dispatcher closed, dropping event")
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("notification queue full, dropping event",
			zap.String("user_id", ev.UserID.String()),
		)
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}
