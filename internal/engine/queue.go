package engine

import (
	"sync"

	"github.com/nvall/chordd/internal/keysym"
)

// Transition is the direction of a key event.
type Transition int

const (
	// Press is a key going down (or an OS repeat while down).
	Press Transition = iota + 1
	// Release is a key coming up.
	Release
)

// String returns "press" or "release".
func (t Transition) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	default:
		return "transition(?)"
	}
}

// KeyEvent is one event from the input source.
type KeyEvent struct {
	Code       keysym.Code
	Transition Transition
}

// EventType distinguishes event kinds on the engine queue.
type EventType int

const (
	// EventTypeKey is a key press or release to match.
	EventTypeKey EventType = iota + 1
	// EventTypeReload requests recompilation of the configuration.
	EventTypeReload
	// EventTypeReset clears the tracked key state (device re-grab).
	EventTypeReset
)

// Event wraps key events and control requests for the event queue.
// Control requests ride the same queue so that a reload is atomic with
// respect to matching: it takes effect between events, never during one.
type Event struct {
	Type EventType
	Key  KeyEvent
}

// eventQueue is a thread-safe FIFO queue for events.
//
// The queue is unbounded: the input source must never block behind a
// slow consumer, and since command execution is fire-and-forget the
// depth stays small in practice.
//
// Thread-safety covers external enqueuing (input source, signal handler,
// config watcher) while the Engine's Run loop dequeues.
//
// The queue uses a channel for signaling to enable context-aware waiting
// in the Run loop.
type eventQueue struct {
	mu     sync.Mutex
	events []Event
	closed bool
	signal chan struct{} // Signals event availability (buffered, size 1)
}

// newEventQueue creates an empty event queue.
func newEventQueue() *eventQueue {
	return &eventQueue{
		events: make([]Event, 0, 64),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue adds an event to the back of the queue.
// Thread-safe: may be called from any goroutine.
// Returns false if the queue is closed.
func (q *eventQueue) Enqueue(e Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.events = append(q.events, e)

	// Signal availability (non-blocking - buffer of 1 coalesces multiple signals)
	select {
	case q.signal <- struct{}{}:
	default:
	}

	return true
}

// TryDequeue attempts to dequeue without blocking.
// Returns (Event{}, false) if queue is empty.
func (q *eventQueue) TryDequeue() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return Event{}, false
	}

	e := q.events[0]

	// Reset the slice when drained so the backing array is reused
	// instead of sliding forward forever.
	if len(q.events) == 1 {
		q.events = q.events[:0]
	} else {
		q.events = q.events[1:]
	}

	return e, true
}

// Wait returns a channel that signals when events may be available.
// Use with select for context-aware waiting.
func (q *eventQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the current queue length.
func (q *eventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Closed reports whether Close has been called.
func (q *eventQueue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Close signals that no more events will be enqueued.
// Wakes any blocked waiters by closing the signal channel.
func (q *eventQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	close(q.signal)
}
