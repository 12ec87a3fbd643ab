// Package notify holds the notification channel shared by the catalog view,
// item actions and the product form. At most one notification is current;
// each new one replaces it and expires after a fixed duration.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultDuration is how long a notification stays current.
const DefaultDuration = 3 * time.Second

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notification is one message shown to the user.
type Notification struct {
	ID        uint64
	Kind      Kind
	Message   string
	CreatedAt time.Time
}

// Event is delivered to subscribers. Cleared events carry the notification
// that went away.
type Event struct {
	Notification Notification
	Cleared      bool
}

// Bus publishes notifications to subscribers.
type Bus struct {
	duration time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	nextID  uint64
	current *Notification
	timer   *time.Timer
	subs    map[int]chan Event
	nextSub int
	closed  bool
}

// New creates a bus whose notifications expire after duration. A non-positive
// duration means DefaultDuration.
func New(duration time.Duration, logger *slog.Logger) *Bus {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Bus{
		duration: duration,
		logger:   logger,
		subs:     make(map[int]chan Event),
	}
}

// Duration returns the expiry applied to each notification.
func (b *Bus) Duration() time.Duration {
	return b.duration
}

// Success publishes a success notification.
func (b *Bus) Success(ctx context.Context, message string) {
	b.publish(ctx, KindSuccess, message)
}

// Error publishes an error notification.
func (b *Bus) Error(ctx context.Context, message string) {
	b.publish(ctx, KindError, message)
}

// Info publishes an informational notification.
func (b *Bus) Info(ctx context.Context, message string) {
	b.publish(ctx, KindInfo, message)
}

func (b *Bus) publish(ctx context.Context, kind Kind, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.nextID++
	n := Notification{
		ID:        b.nextID,
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}
	b.current = &n

	if b.timer != nil {
		b.timer.Stop()
	}
	id := n.ID
	b.timer = time.AfterFunc(b.duration, func() { b.expire(id) })

	b.logger.DebugContext(ctx, "notification",
		slog.Uint64("id", n.ID),
		slog.String("kind", string(kind)),
		slog.String("message", message),
	)
	b.broadcast(Event{Notification: n})
}

// expire clears the current notification if it is still id. A notification
// replaced before its timer fired is left alone.
func (b *Bus) expire(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil || b.current.ID != id {
		return
	}
	b.clear()
}

// Dismiss clears the current notification immediately.
func (b *Bus) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return
	}
	b.clear()
}

func (b *Bus) clear() {
	n := *b.current
	b.current = nil
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.broadcast(Event{Notification: n, Cleared: true})
}

// Current returns the notification being shown, if any.
func (b *Bus) Current() (Notification, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return Notification{}, false
	}
	return *b.current, true
}

// Subscribe returns a channel receiving every subsequent event and a func that
// unsubscribes and closes it. Delivery never blocks: a subscriber whose buffer
// is full misses the event.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	key := b.nextSub
	b.nextSub++
	b.subs[key] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[key]; ok {
				delete(b.subs, key)
				close(sub)
			}
		})
	}
}

func (b *Bus) broadcast(ev Event) {
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.logger.Debug("notification dropped for slow subscriber",
				slog.Uint64("id", ev.Notification.ID),
			)
		}
	}
}

// Close stops the expiry timer and closes every subscriber channel. Later
// publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	for key, ch := range b.subs {
		delete(b.subs, key)
		close(ch)
	}
}
