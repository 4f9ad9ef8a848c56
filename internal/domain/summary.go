package domain

import "github.com/shopspring/decimal"

// Summary is the consolidated top-N across all exchanges, the Merger's
// output. It is immutable once produced: nothing downstream mutates its
// slices, so a shared reference may be fanned out to every subscriber
// without copying.
type Summary struct {
	Bids []Level
	Asks []Level

	// Spread is asks[0].Price - bids[0].Price. It is the zero decimal, and
	// EmptySide is set, when either side has no levels.
	Spread    decimal.Decimal
	EmptySide bool
}

// NewSummary computes spread from the first level of each side.
func NewSummary(bids, asks []Level) Summary {
	s := Summary{Bids: bids, Asks: asks}
	if len(bids) == 0 || len(asks) == 0 {
		s.Spread = decimal.Zero
		s.EmptySide = true
		return s
	}
	s.Spread = asks[0].Price.Sub(bids[0].Price)
	return s
}
