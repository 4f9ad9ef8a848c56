// Package metrics wires the Merger, feed adapters, and subscription
// registry to a Prometheus registry, grounded on
// infrastructure/prometheus/promclient.go from the teacher repository. No
// Non-goal in the design excludes observability, so this is carried as
// ambient infrastructure rather than dropped.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	// ExchangeBookDepth is the number of levels currently held per side for
	// a given exchange, one of the book-depth gauges the teacher always
	// registers per provider (BinanceOpenOrderBookGauge,
	// KucoinOpenOrderBookGauge).
	ExchangeBookDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orderbook_merger_exchange_book_depth",
			Help: "Number of levels currently retained for an exchange's side of the book.",
		},
		[]string{"exchange", "side"},
	)

	// SubscriberCount is the number of subscribers currently registered.
	SubscriberCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orderbook_merger_subscriber_count",
			Help: "Number of subscribers currently registered with the merger.",
		},
	)

	// SubscriberDrops counts Summary values dropped for a subscriber whose
	// egress channel was full.
	SubscriberDrops = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderbook_merger_subscriber_drops_total",
			Help: "Summaries dropped because a subscriber's egress channel was full.",
		},
		[]string{"subscriber"},
	)

	// FeedTransientErrors counts parse/disconnect errors per exchange,
	// surfaced for operators without ever propagating to the Merger.
	FeedTransientErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orderbook_merger_feed_transient_errors_total",
			Help: "Transient feed errors (parse failures, disconnects) per exchange.",
		},
		[]string{"exchange"},
	)
)

// registry is package-private so every gauge/counter above is registered
// exactly once regardless of how many times Serve is called (tests build
// multiple Mergers against the same process).
var registry = func() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(ExchangeBookDepth, SubscriberCount, SubscriberDrops, FeedTransientErrors)
	reg.MustRegister(collectors.NewGoCollector())
	return reg
}()

// Serve starts the /metrics HTTP endpoint on addr and blocks until ctx is
// cancelled or the listener fails. It runs on its own bind address,
// separate from the gRPC port.
func Serve(ctx context.Context, addr string, log *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		log.Info("metrics server listening", zap.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return server.Close()
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
