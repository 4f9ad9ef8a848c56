package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spooky-finn/orderbook-merger/internal/domain"
	"github.com/spooky-finn/orderbook-merger/internal/registry"
)

func TestRegistry_SubscribeUnsubscribe(t *testing.T) {
	r := registry.New(zap.NewNop())
	assert.Equal(t, 0, r.Count())

	handle, egress := r.Subscribe()
	assert.Equal(t, 1, r.Count())

	r.Publish(domain.Summary{})
	summary, ok := <-egress
	require.True(t, ok)
	assert.Equal(t, domain.Summary{}, summary)

	r.Unsubscribe(handle)
	assert.Equal(t, 0, r.Count())

	_, ok = <-egress
	assert.False(t, ok, "egress channel must be closed on unsubscribe")
}

func TestRegistry_UnsubscribeUnknownHandleIsNoop(t *testing.T) {
	r := registry.New(zap.NewNop())
	r.Unsubscribe(registry.Handle{})
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_SlowSubscriberDoesNotStarveFastOne(t *testing.T) {
	r := registry.New(zap.NewNop())

	fastHandle, fast := r.Subscribe()
	slowHandle, slow := r.Subscribe()

	// The fast subscriber acknowledges each summary before the next Publish,
	// so it always has room in its channel: any loss it saw could only come
	// from the slow subscriber, which never drains.
	const n = 1000
	fastReceived := 0
	acks := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range fast {
			fastReceived++
			acks <- struct{}{}
		}
	}()

	for i := 0; i < n; i++ {
		r.Publish(domain.Summary{})
		<-acks
	}

	r.Unsubscribe(fastHandle)
	<-done

	assert.Equal(t, n, fastReceived, "a fast subscriber must receive every published summary")

	slowReceived := drainNonBlocking(slow)
	assert.LessOrEqual(t, slowReceived, 8, "a slow subscriber's backlog is bounded by its egress capacity")

	r.Unsubscribe(slowHandle)
}

func drainNonBlocking(ch <-chan domain.Summary) int {
	count := 0
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return count
			}
			count++
		default:
			return count
		}
	}
}

func TestRegistry_PublishFanOutToMultipleSubscribers(t *testing.T) {
	r := registry.New(zap.NewNop())

	_, egressA := r.Subscribe()
	_, egressB := r.Subscribe()

	summary := domain.Summary{}
	r.Publish(summary)

	a := <-egressA
	b := <-egressB
	assert.Equal(t, summary, a)
	assert.Equal(t, summary, b)
}
