package events

import (
	"testing"

	"github.com/san-kum/membrane/internal/osmo"
)

func TestQueueDropsOldestWhenFull(t *testing.T) {
	q := NewQueue(3, 1.0)
	for i := 0; i < 5; i++ {
		q.Push(osmo.CrossingEvent{Pos: osmo.Vec3{X: float64(i)}})
	}

	if q.Len() != 3 {
		t.Fatalf("len = %d, want 3", q.Len())
	}
	evs := q.Events()
	if evs[0].Pos.X != 2 || evs[2].Pos.X != 4 {
		t.Errorf("expected events 2..4 oldest first, got %v", evs)
	}
}

func TestQueueTTLEviction(t *testing.T) {
	q := NewQueue(8, 0.5)
	q.Push(osmo.CrossingEvent{Kind: osmo.Exit})
	q.Advance(0.3)
	q.Push(osmo.CrossingEvent{Kind: osmo.Enter})

	q.Advance(0.3) // first event now at 0.6 > ttl, second at 0.3
	if q.Len() != 1 {
		t.Fatalf("len = %d, want 1", q.Len())
	}
	if q.Events()[0].Kind != osmo.Enter {
		t.Errorf("wrong survivor: %+v", q.Events()[0])
	}
}

func TestQueuePushResetsAge(t *testing.T) {
	q := NewQueue(4, 1.0)
	q.Push(osmo.CrossingEvent{Age: 99})
	if age := q.Events()[0].Age; age != 0 {
		t.Errorf("age = %f, want 0", age)
	}
}

func TestQueueDefaults(t *testing.T) {
	q := NewQueue(0, -1)
	if q.TTL() != DefaultTTL {
		t.Errorf("ttl = %f, want %f", q.TTL(), DefaultTTL)
	}
	for i := 0; i < DefaultCapacity+10; i++ {
		q.Push(osmo.CrossingEvent{})
	}
	if q.Len() != DefaultCapacity {
		t.Errorf("len = %d, want default capacity %d", q.Len(), DefaultCapacity)
	}
}
