package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is anything published on the bus.
type Event interface {
	Name() string
}

// Listener handles one event.
type Listener func(ctx context.Context, event Event) error

const listenerTimeout = time.Minute

// Bus fans events out to listeners, each in its own goroutine.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	wg        sync.WaitGroup
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger.Named("eventbus"),
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish hands the event to every subscriber and returns immediately.
// Listeners run on a context detached from ctx, so they outlive the request.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	listeners := b.listeners[event.Name()]
	b.mu.RUnlock()

	base := context.WithoutCancel(ctx)
	for _, listener := range listeners {
		b.wg.Add(1)
		go func(l Listener) {
			defer b.wg.Done()
			ctxWithTimeout, cancel := context.WithTimeout(base, listenerTimeout)
			defer cancel()

			if err := l(ctxWithTimeout, event); err != nil {
				b.logger.Error("event listener failed",
					zap.String("event", event.Name()),
					zap.Error(err),
				)
			}
		}(listener)
	}
}

// Wait blocks until every listener started so far has returned.
func (b *Bus) Wait() {
	b.wg.Wait()
}
