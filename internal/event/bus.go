// Package event provides the synchronous, typed event bus used for window,
// surface and constraint lifecycle notifications.
//
// Delivery is synchronous and in subscription order on the publisher's
// goroutine. A subscription that is cancelled while an event is being
// delivered does not receive that event if it has not been reached yet, so
// cancelling from inside a handler is safe and takes effect immediately.
package event

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Bus errors.
var (
	// ErrInvalidTopic indicates a malformed topic or pattern.
	ErrInvalidTopic = errors.New("event: invalid topic")

	// ErrNilHandler indicates a nil handler was passed to Subscribe.
	ErrNilHandler = errors.New("event: nil handler")
)

// Event is a published event.
type Event struct {
	Topic   Topic
	Payload any
}

// HandlerFunc handles a delivered event.
type HandlerFunc func(ev Event)

// Subscription is a handle to a registered handler.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Topic returns the subscribed topic pattern.
	Topic() Topic

	// Active reports whether the subscription still receives events.
	Active() bool

	// Cancel removes the subscription. Safe to call more than once.
	Cancel()
}

type subscription struct {
	id      string
	pattern Topic
	fn      HandlerFunc
	bus     *Bus
	active  bool
}

func (s *subscription) ID() string   { return s.id }
func (s *subscription) Topic() Topic { return s.pattern }
func (s *subscription) Active() bool { return s.active }
func (s *subscription) Cancel()      { s.bus.remove(s) }

// Bus delivers events to subscribers. It is not safe for concurrent use;
// all publishing happens on the compositor event loop.
type Bus struct {
	subs []*subscription

	// depth counts nested Publish calls; removals during delivery are
	// compacted once the outermost Publish returns.
	depth int
	dirty bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for events whose topic matches pattern.
func (b *Bus) Subscribe(pattern Topic, fn HandlerFunc) (Subscription, error) {
	if !pattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}
	if fn == nil {
		return nil, ErrNilHandler
	}
	s := &subscription{
		id:      uuid.NewString(),
		pattern: pattern,
		fn:      fn,
		bus:     b,
		active:  true,
	}
	b.subs = append(b.subs, s)
	return s, nil
}

// MustSubscribe is Subscribe for static patterns known to be valid.
func (b *Bus) MustSubscribe(pattern Topic, fn HandlerFunc) Subscription {
	s, err := b.Subscribe(pattern, fn)
	if err != nil {
		panic(err)
	}
	return s
}

// Publish delivers an event to every matching active subscription.
func (b *Bus) Publish(t Topic, payload any) {
	ev := Event{Topic: t, Payload: payload}

	b.depth++
	// Subscriptions added during delivery are not visited for this event.
	n := len(b.subs)
	for i := 0; i < n; i++ {
		s := b.subs[i]
		if !s.active || !t.Matches(s.pattern) {
			continue
		}
		s.fn(ev)
	}
	b.depth--

	if b.depth == 0 && b.dirty {
		b.compact()
	}
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	n := 0
	for _, s := range b.subs {
		if s.active {
			n++
		}
	}
	return n
}

func (b *Bus) remove(s *subscription) {
	if !s.active {
		return
	}
	s.active = false
	if b.depth > 0 {
		b.dirty = true
		return
	}
	b.compact()
}

func (b *Bus) compact() {
	kept := b.subs[:0]
	for _, s := range b.subs {
		if s.active {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(b.subs); i++ {
		b.subs[i] = nil
	}
	b.subs = kept
	b.dirty = false
}
