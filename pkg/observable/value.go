package observable

import (
	"context"
	"sync"
)

// defaultBuffer is the per-subscriber channel buffer. Subscribers that fall
// further behind than this lose their oldest pending update.
const defaultBuffer = 16

// Value holds a current value of type T and notifies subscribers on every
// change. All methods are safe for concurrent use.
type Value[T any] struct {
	mu          sync.RWMutex
	current     T
	subscribers map[*Subscription[T]]struct{}
	closed      bool
	done        chan struct{}
	cleanupWg   sync.WaitGroup
}

// NewValue creates an observable holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current:     initial,
		subscribers: make(map[*Subscription[T]]struct{}),
		done:        make(chan struct{}),
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set replaces the current value and notifies all subscribers.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = next
	v.notify(next)
}

// Update applies fn to the current value under the write lock and notifies
// subscribers with the result. It returns the new value.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = fn(v.current)
	v.notify(v.current)
	return v.current
}

// Subscribe registers a new subscriber. The subscription is cleaned up
// automatically when ctx is cancelled; callers may also Close it directly.
// Subscribing to a closed observable returns an already-closed subscription.
func (v *Value[T]) Subscribe(ctx context.Context) *Subscription[T] {
	v.mu.Lock()
	defer v.mu.Unlock()

	sub := &Subscription[T]{ch: make(chan T, defaultBuffer)}

	if v.closed {
		_ = sub.Close()
		return sub
	}

	v.subscribers[sub] = struct{}{}

	// The watcher also exits on v.done so Close never waits for callers to
	// cancel their contexts.
	if ctx.Done() != nil {
		v.cleanupWg.Add(1)
		go func() {
			defer v.cleanupWg.Done()
			select {
			case <-ctx.Done():
				v.unsubscribe(sub)
			case <-v.done:
			}
		}()
	}

	return sub
}

// Close shuts down the observable and closes all subscriptions.
// It is safe to call Close multiple times.
func (v *Value[T]) Close() error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	v.closed = true
	close(v.done)

	for sub := range v.subscribers {
		_ = sub.Close()
	}
	clear(v.subscribers)
	v.mu.Unlock()

	v.cleanupWg.Wait()
	return nil
}

// notify delivers next to every subscriber without blocking.
// Callers must hold v.mu.
func (v *Value[T]) notify(next T) {
	for sub := range v.subscribers {
		sub.send(next)
	}
}

func (v *Value[T]) unsubscribe(sub *Subscription[T]) {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.subscribers, sub)
	_ = sub.Close()
}

// Subscription receives value updates from a Value.
type Subscription[T any] struct {
	ch     chan T
	mu     sync.Mutex
	closed bool
}

// Updates returns the channel of value updates. The channel is closed when
// the subscription is closed.
func (s *Subscription[T]) Updates() <-chan T {
	return s.ch
}

// Close stops the subscription and closes its channel.
// Close is idempotent.
func (s *Subscription[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

// send delivers next without blocking. When the buffer is full, the oldest
// pending update is discarded so the subscriber converges on the newest value.
func (s *Subscription[T]) send(next T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	select {
	case s.ch <- next:
	default:
		select {
		case <-s.ch:
		default:
		}
		select {
		case s.ch <- next:
		default:
		}
	}
}
