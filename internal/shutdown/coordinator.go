// Package shutdown implements the process harness's shutdown coordinator:
// a broadcast cancellation observed by every task, with a bounded
// deadline to await orderly drain before forcing a non-zero exit. Modeled
// on the os/signal + context.WithCancel + sync.WaitGroup pattern in
// rahjooh-CryptoTrade/main.go, generalized from a single linear shutdown
// sequence into a broadcast context plus a WaitGroup any task can join.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Coordinator broadcasts cancellation to every registered task and awaits
// their exit with a bounded deadline.
type Coordinator struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	log    *zap.Logger
}

// New builds a Coordinator whose context is cancelled the first time this
// process receives SIGINT or SIGTERM, or when Cancel is called directly
// (used by tests and by fatal-runtime-error paths).
func New(log *zap.Logger) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{ctx: ctx, cancel: cancel, log: log}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	return c
}

// Context is the broadcast cancellation signal every task must select
// against at its suspension points.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// Cancel triggers shutdown directly, e.g. after a fatal runtime error.
func (c *Coordinator) Cancel() {
	c.cancel()
}

// Go runs fn in its own goroutine and tracks it for Wait.
func (c *Coordinator) Go(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

// Wait blocks until every task started with Go has returned, or until
// deadline elapses first. It reports whether every task exited in time.
func (c *Coordinator) Wait(deadline time.Duration) (drained bool) {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(deadline):
		c.log.Warn("shutdown deadline exceeded, exiting anyway", zap.Duration("deadline", deadline))
		return false
	}
}
