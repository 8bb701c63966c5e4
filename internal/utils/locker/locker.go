package locker

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrUnavailable is returned when the context ends before the lock is held.
var ErrUnavailable = errors.New("entity is locked by another request")

// Locker serializes read-modify-write sequences per entity key.
type Locker interface {
	// Lock blocks until key is held or ctx is done. The returned func
	// releases the lock and is safe to call more than once.
	Lock(ctx context.Context, key string) (func(), error)
}

func ShoppingListKey(id string) string  { return "shopping-list:" + id }
func MenuPlanKey(id string) string      { return "menu-plan:" + id }
func MenuOwnerKey(userID string) string { return "menu-owner:" + userID }
func InventoryKey(userID string) string { return "inventory:" + userID }

type entry struct {
	ch   chan struct{}
	refs int
}

// MemoryLocker keeps one lock per key inside this process. Keys are
// dropped once nobody holds or waits for them.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

var _ Locker = (*MemoryLocker)(nil)

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*entry)}
}

func (l *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(key, e)
		})
	}, nil
}

func (l *MemoryLocker) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// Len reports how many keys are currently tracked.
func (l *MemoryLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
