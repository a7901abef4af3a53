package schedule

import (
	"container/heap"
	"context"
	"sync"
)

// EventKind distinguishes the two halves of a note's schedule.
type EventKind uint8

const (
	// Start marks the scheduled moment a note begins sounding.
	Start EventKind = iota
	// Stop marks the scheduled moment a note stops sounding.
	Stop
)

func (k EventKind) String() string {
	if k == Start {
		return "start"
	}
	return "stop"
}

// ScheduledEvent is one pending queue entry. The Note travels with the event:
// a Stop always carries the Note captured at Start time, so the note off
// matches the note on that was actually sent even if the row changed since.
type ScheduledEvent struct {
	FireAt float64 // Seconds since playback start.
	Kind   EventKind
	Note   Note

	seq uint64 // Insertion order; breaks fire-time ties FIFO.
}

// eventHeap orders events by fire time, then by insertion order.
type eventHeap []ScheduledEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].FireAt != h[j].FireAt {
		return h[i].FireAt < h[j].FireAt
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)   { *h = append(*h, x.(ScheduledEvent)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// EventQueue is the time-ordered multiset of pending events shared by the
// fetch and dispatch loops. It is the sole synchronization structure between
// them: one mutex guards the heap, and PopMin doubles as the wait primitive.
type EventQueue struct {
	mu       sync.Mutex
	events   eventHeap
	seq      uint64
	notEmpty chan struct{}
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{notEmpty: make(chan struct{}, 1)}
}

// Insert adds an event to the queue and wakes a blocked PopMin, if any.
func (q *EventQueue) Insert(ev ScheduledEvent) {
	q.mu.Lock()
	ev.seq = q.seq
	q.seq++
	heap.Push(&q.events, ev)
	q.mu.Unlock()

	select {
	case q.notEmpty <- struct{}{}:
	default:
	}
}

// PopMin removes and returns the event with the smallest fire time. When the
// queue is empty it blocks until an event is inserted or ctx is canceled.
func (q *EventQueue) PopMin(ctx context.Context) (ScheduledEvent, error) {
	for {
		q.mu.Lock()
		if q.events.Len() > 0 {
			ev := heap.Pop(&q.events).(ScheduledEvent)
			q.mu.Unlock()
			return ev, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return ScheduledEvent{}, ctx.Err()
		case <-q.notEmpty:
		}
	}
}

// DrainAndFilter atomically removes every pending event, reinserts only those
// for which keep returns true, and discards the rest. No concurrent Insert or
// PopMin can observe a partially drained queue. Returns the number of events
// discarded.
func (q *EventQueue) DrainAndFilter(keep func(ScheduledEvent) bool) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	retained := q.events[:0]
	dropped := 0
	for _, ev := range q.events {
		if keep(ev) {
			retained = append(retained, ev)
		} else {
			dropped++
		}
	}
	q.events = retained
	heap.Init(&q.events) // original seq values survive, so FIFO ties hold
	return dropped
}

// Len reports the number of pending events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.events.Len()
}
