// Package buffer decouples a feed adapter's websocket read loop from its
// parse-and-publish work, the same job the teacher's
// domain/orderbook-maintainer.go queueReader does with a
// github.com/gammazero/deque-backed queue guarded by a mutex. A slow parse
// must never stall the websocket read loop.
package buffer

import (
	"sync"

	"github.com/gammazero/deque"
)

// Raw is a FIFO queue of raw websocket frames. Push is called from the read
// goroutine, Pop from the parse goroutine; both are safe for concurrent use.
type Raw struct {
	mu   sync.Mutex
	cond *sync.Cond
	q    deque.Deque[[]byte]

	closed bool
}

// New builds an empty Raw buffer.
func New() *Raw {
	r := &Raw{}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Push enqueues a frame, waking any blocked Pop.
func (r *Raw) Push(frame []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.q.PushBack(frame)
	r.cond.Signal()
}

// Pop blocks until a frame is available or Close is called, in which case
// ok is false.
func (r *Raw) Pop() (frame []byte, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for r.q.Len() == 0 && !r.closed {
		r.cond.Wait()
	}
	if r.q.Len() == 0 {
		return nil, false
	}
	return r.q.PopFront(), true
}

// Close unblocks any pending Pop and causes future Pop calls to return
// immediately once the queue drains.
func (r *Raw) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.cond.Broadcast()
}
