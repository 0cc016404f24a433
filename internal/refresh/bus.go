// Package refresh provides the signal channel that decouples out-of-band
// task mutations (the chat flow) from the task synchronizer.
package refresh

import "sync"

// Bus is a process-wide publish/subscribe handle carrying a single event
// kind: "a reload was requested". Signals have no payload. Each
// subscriber channel is buffered with capacity one and published to
// without blocking, so publishes that arrive while a subscriber is busy
// collapse into a single pending signal.
type Bus struct {
	mu     sync.Mutex
	subs   []chan struct{}
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a new subscriber and returns its signal channel.
// The channel is closed when the bus is closed.
func (b *Bus) Subscribe() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan struct{}, 1)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

// Unsubscribe removes a previously subscribed channel.
func (b *Bus) Unsubscribe(ch <-chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// Publish signals every subscriber that a refresh was requested. A
// subscriber with a signal already pending is not queued a second one.
func (b *Bus) Publish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for _, sub := range b.subs {
		select {
		case sub <- struct{}{}:
		default:
		}
	}
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, sub := range b.subs {
		close(sub)
	}
	b.subs = nil
}
