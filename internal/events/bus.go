// Package events subscribes event modules to the gateway's event stream.
package events

import (
	"sync"
	"sync/atomic"
)

// Listener receives the arguments of an emitted event, unmodified.
type Listener func(args ...any)

type subscription struct {
	id   uint64
	fn   Listener
	once bool
	// fired is set by the first emit that claims a once subscription.
	fired atomic.Bool
}

// Bus is a name-keyed event emitter. It is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string][]*subscription
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]*subscription)}
}

// On subscribes fn to every emission of name.
func (b *Bus) On(name string, fn Listener) (off func()) {
	return b.subscribe(name, fn, false)
}

// Once subscribes fn to the next emission of name only.
func (b *Bus) Once(name string, fn Listener) (off func()) {
	return b.subscribe(name, fn, true)
}

func (b *Bus) subscribe(name string, fn Listener, once bool) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &subscription{id: b.nextID, fn: fn, once: once}
	b.subs[name] = append(b.subs[name], sub)

	return func() { b.remove(name, sub.id) }
}

func (b *Bus) remove(name string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[name]
	for i, s := range subs {
		if s.id == id {
			b.subs[name] = append(subs[:i:i], subs[i+1:]...)

			break
		}
	}
	if len(b.subs[name]) == 0 {
		delete(b.subs, name)
	}
}

// Emit calls every listener of name with args, in subscription order, and
// returns how many ran.
func (b *Bus) Emit(name string, args ...any) int {
	b.mu.RLock()
	subs := append([]*subscription(nil), b.subs[name]...)
	b.mu.RUnlock()

	n := 0
	for _, s := range subs {
		if s.once {
			if !s.fired.CompareAndSwap(false, true) {
				continue
			}
			b.remove(name, s.id)
		}
		s.fn(args...)
		n++
	}

	return n
}

// Listeners returns the number of subscriptions for name.
func (b *Bus) Listeners(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subs[name])
}
