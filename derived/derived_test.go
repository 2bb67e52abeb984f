package derived

import "testing"

func TestCacheInvalidatesOnPublish(t *testing.T) {
	bus := NewBus()
	cache := NewCache(bus)

	cache.Set("alice", "snapshot-a")
	cache.Set("bob", "snapshot-b")

	bus.Publish(Change{UserID: "alice", Entity: "expenses"})

	if _, ok := cache.Get("alice"); ok {
		t.Error("alice's snapshot should be invalidated after her change")
	}
	if v, ok := cache.Get("bob"); !ok || v != "snapshot-b" {
		t.Error("bob's snapshot should survive alice's change")
	}
}

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()
	var got []string
	bus.Subscribe(func(c Change) { got = append(got, "first:"+c.Entity) })
	bus.Subscribe(func(c Change) { got = append(got, "second:"+c.Entity) })

	bus.Publish(Change{UserID: "alice", Entity: "budgets"})

	if len(got) != 2 || got[0] != "first:budgets" || got[1] != "second:budgets" {
		t.Errorf("subscribers saw %v", got)
	}
}

func TestCacheMissAfterSetThenInvalidate(t *testing.T) {
	bus := NewBus()
	cache := NewCache(bus)

	if _, ok := cache.Get("nobody"); ok {
		t.Error("expected miss for unknown user")
	}
	cache.Set("carol", 42)
	cache.Invalidate("carol")
	if _, ok := cache.Get("carol"); ok {
		t.Error("expected miss after invalidate")
	}
}
