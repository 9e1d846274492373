package session

import (
	"context"
	"sync"
)

// ChangeEvent names the in-process session change notification.
const ChangeEvent = "localStorageChange"

// Signal carries "the stored session changed" between Stores.
type Signal interface {
	// Publish announces a change written by this process.
	Publish(ctx context.Context) error
	// Subscribe registers fn for change announcements and returns a function
	// that removes it.
	Subscribe(fn func()) (unsubscribe func())
}

// listeners is a fan-out list safe for concurrent use. Callbacks run
// synchronously on the notifying goroutine, outside the lock, so a callback
// may itself subscribe or unsubscribe.
type listeners[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(T)
}

func (l *listeners[T]) add(fn func(T)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	id := l.next
	l.next++
	l.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.fns, id)
			l.mu.Unlock()
		})
	}
}

func (l *listeners[T]) notify(v T) {
	l.mu.Lock()
	fns := make([]func(T), 0, len(l.fns))
	// registration order keeps fan-out deterministic
	for id := 0; id < l.next; id++ {
		if fn, ok := l.fns[id]; ok {
			fns = append(fns, fn)
		}
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (l *listeners[T]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}

// LocalBus is the in-process Signal. Publish delivers to every subscriber
// before returning.
type LocalBus struct {
	l listeners[struct{}]
}

func NewLocalBus() *LocalBus {
	return &LocalBus{}
}

func (b *LocalBus) Publish(context.Context) error {
	b.l.notify(struct{}{})
	return nil
}

func (b *LocalBus) Subscribe(fn func()) func() {
	return b.l.add(func(struct{}) { fn() })
}
