package refresh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func drain(ch <-chan struct{}) int {
	n := 0
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return n
			}
			n++
		case <-time.After(10 * time.Millisecond):
			return n
		}
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := NewBus()
	a := b.Subscribe()
	c := b.Subscribe()

	b.Publish()

	assert.Equal(t, 1, drain(a))
	assert.Equal(t, 1, drain(c))
}

func TestPublishCoalescesWhileUnconsumed(t *testing.T) {
	b := NewBus()
	ch := b.Subscribe()

	b.Publish()
	b.Publish()
	b.Publish()

	// Three rapid publishes collapse into a single pending signal.
	assert.Equal(t, 1, drain(ch))
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus()
	ch := b.Subscribe()
	b.Unsubscribe(ch)

	b.Publish()

	_, ok := <-ch
	assert.False(t, ok, "unsubscribed channel must be closed")
}

func TestCloseClosesSubscribers(t *testing.T) {
	b := NewBus()
	ch := b.Subscribe()

	b.Close()

	_, ok := <-ch
	assert.False(t, ok)

	// Publishing and closing again are no-ops.
	b.Publish()
	b.Close()

	// Subscribing after close yields an already-closed channel.
	late := b.Subscribe()
	_, ok = <-late
	assert.False(t, ok)
}
