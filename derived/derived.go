// Package derived implements the contract between mutations and derived
// views: handlers publish a change after every successful write, and
// subscribers recompute or invalidate whatever they derived from that
// entity. The dashboard snapshot cache is the one subscriber in this
// service.
package derived

import "sync"

// Change identifies which user's records of which entity changed.
type Change struct {
	UserID string
	Entity string // e.g. "credit_cards", "expenses"
}

// Bus is a synchronous in-process change notifier.
type Bus struct {
	mu   sync.RWMutex
	subs []func(Change)
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn to run on every published change.
func (b *Bus) Subscribe(fn func(Change)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish delivers the change to all subscribers before returning, so a
// read that follows a mutation never sees a stale derived view.
func (b *Bus) Publish(c Change) {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(c)
	}
}

// Cache holds one computed dashboard snapshot per user, dropped whenever
// any of that user's records change.
type Cache struct {
	mu        sync.Mutex
	snapshots map[string]any
}

// NewCache returns a cache wired to invalidate on every change the bus
// publishes.
func NewCache(bus *Bus) *Cache {
	c := &Cache{snapshots: make(map[string]any)}
	bus.Subscribe(func(ch Change) {
		c.Invalidate(ch.UserID)
	})
	return c
}

func (c *Cache) Get(userID string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.snapshots[userID]
	return v, ok
}

func (c *Cache) Set(userID string, snapshot any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[userID] = snapshot
}

func (c *Cache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.snapshots, userID)
}
