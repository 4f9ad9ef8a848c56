// Package feed defines the contract every per-exchange feed adapter
// implements: given a Pair, an ingress channel, and a cancellation
// context, run until cancelled, pushing sorted top-N BookSlice values.
package feed

import (
	"context"
	"sort"

	"github.com/spooky-finn/orderbook-merger/internal/domain"
)

// Adapter is implemented by each per-exchange feed.
type Adapter interface {
	// Exchange identifies which Exchange this adapter feeds.
	Exchange() domain.Exchange
	// Run connects, subscribes, and streams BookSlice values onto ingress
	// until ctx is cancelled or a fatal error occurs. A non-nil return is
	// always fatal-for-this-source: transient errors are logged and
	// swallowed internally, never returned.
	Run(ctx context.Context, pair domain.Pair, ingress chan<- domain.BookSlice) error
}

// TopNSorted parses raw [price, amount] string pairs into Level values for
// exchange, drops zero-amount levels, sorts by the side's direction, and
// truncates to depth.
func TopNSorted(raw [][2]string, exchange domain.Exchange, depth int, bids bool) ([]domain.Level, error) {
	levels := make([]domain.Level, 0, len(raw))
	for _, pair := range raw {
		lvl, err := domain.ParseLevel(pair[0], pair[1], exchange)
		if err != nil {
			return nil, err
		}
		if lvl.Amount.IsZero() {
			continue
		}
		levels = append(levels, lvl)
	}

	if bids {
		sort.SliceStable(levels, func(i, j int) bool {
			return levels[i].Price.GreaterThan(levels[j].Price)
		})
	} else {
		sort.SliceStable(levels, func(i, j int) bool {
			return levels[i].Price.LessThan(levels[j].Price)
		})
	}

	if len(levels) > depth {
		levels = levels[:depth]
	}
	return levels, nil
}
