package booking

import "sync"

// EventType identifies what happened to the booking table.
type EventType string

const (
	EventCreated EventType = "created"
	EventDeleted EventType = "deleted"
)

// Event is a change notification for a single booking row. Consumers treat
// it as an invalidation signal and refetch; they never patch from it.
type Event struct {
	Type      EventType
	BookingID string
}

// Feed is the in-process change feed for the booking table. The service
// publishes after every successful mutation; the engine and any streaming
// clients subscribe.
type Feed struct {
	mu   sync.Mutex
	subs map[int]func(Event)
	next int
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[int]func(Event))}
}

// Subscribe registers a handler and returns the disposer that removes it.
// Callers must invoke the disposer when done or the subscription stands
// for the life of the process. Handlers must not block.
func (f *Feed) Subscribe(fn func(Event)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.next
	f.next++
	f.subs[id] = fn

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

// Publish delivers the event to every current subscriber.
func (f *Feed) Publish(ev Event) {
	f.mu.Lock()
	handlers := make([]func(Event), 0, len(f.subs))
	for _, fn := range f.subs {
		handlers = append(handlers, fn)
	}
	f.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
}
