// Package registry implements the subscription fan-out: registering and
// deregistering subscribers and publishing every Summary the Merger produces
// to each of them without ever blocking on a slow one.
package registry

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spooky-finn/orderbook-merger/internal/domain"
	"github.com/spooky-finn/orderbook-merger/internal/metrics"
)

// Handle identifies one registered Subscriber.
type Handle = uuid.UUID

// egressCapacity is the bound on each subscriber's channel.
const egressCapacity = 8

type subscriber struct {
	handle Handle
	egress chan domain.Summary
}

// Registry is the subscription registry. Its internal collection is
// mutated only while holding mu, a short critical section, matching the
// mutex discipline the teacher uses for the same kind of shared collection
// (see domain/orderbook-maintainer.go's depthUpdateQueue mutex).
type Registry struct {
	mu          sync.Mutex
	subscribers map[Handle]*subscriber
	log         *zap.Logger
}

// New builds an empty Registry.
func New(log *zap.Logger) *Registry {
	return &Registry{
		subscribers: make(map[Handle]*subscriber),
		log:         log,
	}
}

// Subscribe registers a new subscriber and returns its handle and egress
// channel. The caller (the RPC surface) owns draining the channel until it
// calls Unsubscribe.
func (r *Registry) Subscribe() (Handle, <-chan domain.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle := uuid.New()
	sub := &subscriber{
		handle: handle,
		egress: make(chan domain.Summary, egressCapacity),
	}
	r.subscribers[handle] = sub
	metrics.SubscriberCount.Set(float64(len(r.subscribers)))
	return handle, sub.egress
}

// Unsubscribe removes handle from the registry and closes its egress
// channel, signalling the owning stream handler to stop.
func (r *Registry) Unsubscribe(handle Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subscribers[handle]
	if !ok {
		return
	}
	delete(r.subscribers, handle)
	close(sub.egress)
	metrics.SubscriberCount.Set(float64(len(r.subscribers)))
}

// Publish fans summary out to every registered subscriber with a
// non-blocking send per subscriber. A full channel drops this
// Summary for that subscriber only (latest-is-best). A subscriber's channel
// is closed only by Unsubscribe, which removes it from the registry in the
// same critical section, so Publish never sends on a closed channel. Publish
// never blocks the Merger,
// regardless of how many subscribers are registered or how slow any one of
// them is.
func (r *Registry) Publish(summary domain.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for handle, sub := range r.subscribers {
		select {
		case sub.egress <- summary:
		default:
			metrics.SubscriberDrops.WithLabelValues(handle.String()).Inc()
			r.log.Debug("dropped summary for slow subscriber", zap.Stringer("subscriber", handle))
		}
	}
}

// Count reports the number of currently registered subscribers. It exists
// mainly to make tests (and the /metrics gauge) easy to assert against.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}
