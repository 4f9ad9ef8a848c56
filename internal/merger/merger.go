// Package merger implements the single-consumer consolidation of per-exchange
// top-of-book slices into one top-N Summary, the core of this repository.
package merger

import (
	"context"

	"go.uber.org/zap"

	"github.com/spooky-finn/orderbook-merger/internal/domain"
	"github.com/spooky-finn/orderbook-merger/internal/metrics"
)

// Publisher is the subset of the subscription registry the Merger depends
// on. The Merger never blocks on it: Publish must be non-blocking on every
// individual subscriber.
type Publisher interface {
	Publish(summary domain.Summary)
}

// Merger owns the mapping Exchange -> ExchangeBook and the single ingress
// channel of BookSlice values. It is the only reader and writer of that
// mapping, so no lock guards it.
type Merger struct {
	depth   int
	ingress <-chan domain.BookSlice
	publish Publisher
	log     *zap.Logger

	books map[domain.Exchange]*domain.ExchangeBook
}

// New builds a Merger that reads from ingress and publishes through pub.
// depth is N, the configured per-side level count.
func New(ingress <-chan domain.BookSlice, pub Publisher, depth int, log *zap.Logger) *Merger {
	return &Merger{
		depth:   depth,
		ingress: ingress,
		publish: pub,
		log:     log,
		books:   make(map[domain.Exchange]*domain.ExchangeBook, len(domain.AllExchanges)),
	}
}

// Run is the Merger's main loop. It is Running while ctx is live and ingress
// is open, and enters Draining the moment either closes: it finishes any
// message already received, then returns. Run is the Merger's only
// recoverable-error-free surface: anything that reaches it beyond
// channel closure or cancellation is a programming error, not handled here.
func (m *Merger) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			m.log.Info("merger draining: cancellation observed")
			return
		case slice, ok := <-m.ingress:
			if !ok {
				m.log.Info("merger draining: ingress closed")
				return
			}
			m.ingestOne(slice)
		}
	}
}

func (m *Merger) ingestOne(slice domain.BookSlice) {
	if err := slice.Validate(); err != nil {
		m.log.Warn("dropping invalid book slice", zap.Error(err), zap.Stringer("exchange", slice.Exchange))
		return
	}

	book, ok := m.books[slice.Exchange]
	if !ok {
		book = &domain.ExchangeBook{}
		m.books[slice.Exchange] = book
	}
	book.Install(slice)
	metrics.ExchangeBookDepth.WithLabelValues(slice.Exchange.String(), "bids").Set(float64(len(book.Bids)))
	metrics.ExchangeBookDepth.WithLabelValues(slice.Exchange.String(), "asks").Set(float64(len(book.Asks)))

	summary := m.consolidate()
	m.publish.Publish(summary)
}

// consolidate runs the k-way merge: a linear scan across
// one cursor per exchange, selecting the best price for the side on every
// step and tie-breaking by exchange rank. Work per call is O(e*N), e the
// number of exchanges with a retained book and N the configured depth, never
// proportional to the total retained level count.
func (m *Merger) consolidate() domain.Summary {
	bids := m.mergeSide(sideBids)
	asks := m.mergeSide(sideAsks)
	return domain.NewSummary(bids, asks)
}

type side int

const (
	sideBids side = iota
	sideAsks
)

// cursor tracks one exchange's position into its ExchangeBook's side during
// the merge.
type cursor struct {
	exchange domain.Exchange
	levels   []domain.Level
	pos      int
}

func (c *cursor) exhausted() bool {
	return c.pos >= len(c.levels)
}

func (c *cursor) current() domain.Level {
	return c.levels[c.pos]
}

func (m *Merger) mergeSide(s side) []domain.Level {
	cursors := make([]*cursor, 0, len(m.books))
	for exchange, book := range m.books {
		levels := book.Bids
		if s == sideAsks {
			levels = book.Asks
		}
		if len(levels) == 0 {
			continue
		}
		cursors = append(cursors, &cursor{exchange: exchange, levels: levels})
	}

	out := make([]domain.Level, 0, m.depth)
	for len(out) < m.depth {
		best := bestCursor(cursors, s)
		if best == nil {
			break
		}
		out = append(out, best.current())
		best.pos++
	}
	return out
}

// bestCursor selects, among the non-exhausted cursors, the one whose current
// level has the best price for the side (max for bids, min for asks),
// tie-broken by exchange rank (lower wins). A straight scan across the
// (constant, small) set of exchange cursors is simpler and faster here than
// a heap would be.
func bestCursor(cursors []*cursor, s side) *cursor {
	var best *cursor
	for _, c := range cursors {
		if c.exhausted() {
			continue
		}
		if best == nil {
			best = c
			continue
		}
		if isBetter(c.current(), best.current(), s) {
			best = c
		} else if c.current().Price.Equal(best.current().Price) && c.exchange.Rank() < best.exchange.Rank() {
			best = c
		}
	}
	return best
}

func isBetter(candidate, current domain.Level, s side) bool {
	if s == sideBids {
		return candidate.Price.GreaterThan(current.Price)
	}
	return candidate.Price.LessThan(current.Price)
}
