// Package events holds the transient crossing-event queue consumed by
// the renderer for burst effects.
package events

import "github.com/san-kum/membrane/internal/osmo"

const (
	DefaultCapacity = 128
	DefaultTTL      = 0.6
)

// Queue is a bounded queue of crossing events with time-to-live
// eviction. When full, the oldest event is dropped to make room.
type Queue struct {
	events []osmo.CrossingEvent
	max    int
	ttl    float64
}

func NewQueue(capacity int, ttl float64) *Queue {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		events: make([]osmo.CrossingEvent, 0, capacity),
		max:    capacity,
		ttl:    ttl,
	}
}

func (q *Queue) Push(e osmo.CrossingEvent) {
	e.Age = 0
	if len(q.events) >= q.max {
		copy(q.events, q.events[1:])
		q.events = q.events[:len(q.events)-1]
	}
	q.events = append(q.events, e)
}

// Advance ages every event by delta and prunes the expired ones.
func (q *Queue) Advance(delta float64) {
	kept := q.events[:0]
	for i := range q.events {
		q.events[i].Age += delta
		if q.events[i].Age <= q.ttl {
			kept = append(kept, q.events[i])
		}
	}
	q.events = kept
}

func (q *Queue) Len() int { return len(q.events) }

func (q *Queue) TTL() float64 { return q.ttl }

// Events returns the live events, oldest first. Read-only to callers.
func (q *Queue) Events() []osmo.CrossingEvent {
	return q.events
}
