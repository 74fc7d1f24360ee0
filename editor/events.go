package editor

import "image"

// Topic is a typed notification channel for a single event kind.
// Subscribers are called synchronously, in subscription order, on the
// goroutine that publishes.
type Topic[T any] struct {
	subs   []*subscriber[T]
	closed bool
}

type subscriber[T any] struct {
	fn     func(T)
	active bool
}

// Subscription is returned by Subscribe and ends delivery when unsubscribed.
type Subscription struct {
	cancel func()
}

// Unsubscribe stops delivery. Calling it more than once is harmless.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
}

// Subscribe registers fn. Subscribing to a closed topic yields an inert subscription.
func (t *Topic[T]) Subscribe(fn func(T)) *Subscription {
	if t == nil || fn == nil || t.closed {
		return &Subscription{}
	}
	s := &subscriber[T]{fn: fn, active: true}
	t.subs = append(t.subs, s)
	return &Subscription{cancel: func() { t.remove(s) }}
}

func (t *Topic[T]) remove(s *subscriber[T]) {
	s.active = false
	for i, other := range t.subs {
		if other == s {
			// copy so an in-flight Publish keeps iterating its own snapshot
			t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers v to every active subscriber.
func (t *Topic[T]) Publish(v T) {
	if t == nil || t.closed {
		return
	}
	for _, s := range t.subs {
		if s.active {
			s.fn(v)
		}
	}
}

// Len returns the number of active subscribers.
func (t *Topic[T]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.subs)
}

// Close drops every subscriber; later publishes are ignored.
func (t *Topic[T]) Close() {
	if t == nil {
		return
	}
	for _, s := range t.subs {
		s.active = false
	}
	t.subs = nil
	t.closed = true
}

// NoticeKind classifies a rejected placement.
type NoticeKind int

const (
	NoticeSpriteCollision NoticeKind = iota
	NoticeFillWithSprite
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeSpriteCollision:
		return "sprite-collision"
	case NoticeFillWithSprite:
		return "fill-with-sprite"
	default:
		return "unknown"
	}
}

// Notice reports an operation that was rejected without mutating the map.
type Notice struct {
	Kind    NoticeKind
	Cell    image.Point
	Message string
}

// ModeAvailability reports whether a brush mode may currently be used.
type ModeAvailability struct {
	Mode    BrushMode
	Enabled bool
}

// Events groups the notification channels an Engine produces.
type Events struct {
	// CursorChanged carries the 1-based cell under the pointer.
	CursorChanged     Topic[image.Point]
	ModeChanged       Topic[BrushMode]
	ModeAvailability  Topic[ModeAvailability]
	PlacementRejected Topic[Notice]
}

func (e *Events) close() {
	e.CursorChanged.Close()
	e.ModeChanged.Close()
	e.ModeAvailability.Close()
	e.PlacementRejected.Close()
}
