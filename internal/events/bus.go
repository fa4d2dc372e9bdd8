package events

import (
	"log/slog"
	"sync"
)

// historyCap bounds the retained event history. Oldest entries drop first.
const historyCap = 100

// Listener receives events synchronously during Emit.
type Listener func(Event)

// Subscription is the handle returned by Subscribe/SubscribeAll. Unsubscribe
// removes exactly the registration that produced it and is safe to call twice.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe removes the listener registration.
func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

type registration struct {
	id int
	fn Listener
}

// Bus is a synchronous publish/subscribe channel with a bounded history.
// Listeners for a type run in registration order, followed by all-event
// listeners; a panicking listener is recovered and logged without disturbing
// the rest of the dispatch.
type Bus struct {
	mu      sync.Mutex
	logger  *slog.Logger
	nextID  int
	byType  map[Type][]registration
	all     []registration
	history []Event
}

// NewBus constructs an empty Bus. A nil logger falls back to slog.Default.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		logger: logger,
		byType: make(map[Type][]registration),
	}
}

// Subscribe registers a listener for one event type.
func (b *Bus) Subscribe(t Type, fn Listener) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.byType[t] = append(b.byType[t], registration{id: id, fn: fn})

	return &Subscription{cancel: func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.byType[t] = removeRegistration(b.byType[t], id)
	}}
}

// SubscribeAll registers a listener for every event regardless of type.
func (b *Bus) SubscribeAll(fn Listener) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.all = append(b.all, registration{id: id, fn: fn})

	return &Subscription{cancel: func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.all = removeRegistration(b.all, id)
	}}
}

// Emit appends the event to history and synchronously invokes every matching
// type listener, then every all-event listener. Panics inside listeners do
// not propagate to the caller.
func (b *Bus) Emit(ev Event) {
	b.mu.Lock()
	b.history = append(b.history, ev)
	if len(b.history) > historyCap {
		b.history = b.history[len(b.history)-historyCap:]
	}
	typed := make([]registration, len(b.byType[ev.EventType()]))
	copy(typed, b.byType[ev.EventType()])
	all := make([]registration, len(b.all))
	copy(all, b.all)
	b.mu.Unlock()

	for _, reg := range typed {
		b.dispatch(reg, ev)
	}
	for _, reg := range all {
		b.dispatch(reg, ev)
	}
}

func (b *Bus) dispatch(reg registration, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event listener panicked",
				"event_type", string(ev.EventType()),
				"listener_id", reg.id,
				"panic", r,
			)
		}
	}()
	reg.fn(ev)
}

// History returns the most recent limit events in emission order (oldest
// first). A non-positive limit returns the full retained history.
func (b *Bus) History(limit int) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return tail(b.history, limit)
}

// EventsByType returns the most recent limit events of one type, oldest first.
func (b *Bus) EventsByType(t Type, limit int) []Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	var matched []Event
	for _, ev := range b.history {
		if ev.EventType() == t {
			matched = append(matched, ev)
		}
	}
	return tail(matched, limit)
}

// Reset clears all subscriptions and history. Events already delivered are
// unaffected.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.byType = make(map[Type][]registration)
	b.all = nil
	b.history = nil
}

// SubscriberCount returns the total number of registered listeners,
// including all-event listeners.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := len(b.all)
	for _, regs := range b.byType {
		total += len(regs)
	}
	return total
}

// SubscriberCountByType returns the number of listeners for one type.
func (b *Bus) SubscriberCountByType(t Type) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.byType[t])
}

func removeRegistration(regs []registration, id int) []registration {
	for i, reg := range regs {
		if reg.id == id {
			return append(regs[:i:i], regs[i+1:]...)
		}
	}
	return regs
}

func tail(evs []Event, limit int) []Event {
	if limit > 0 && limit < len(evs) {
		evs = evs[len(evs)-limit:]
	}
	out := make([]Event, len(evs))
	copy(out, evs)
	return out
}
