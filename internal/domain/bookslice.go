package domain

// BookSlice is the sorted top-N pair of (bids, asks) a feed adapter pushes
// into the Merger's ingress channel. Invariants at ingress: Bids is
// non-increasing in price, Asks is non-decreasing in price, and every Level
// in a given slice carries the same Exchange.
type BookSlice struct {
	Exchange Exchange
	Bids     []Level
	Asks     []Level
}

// Validate checks the BookSlice ingress invariants. It tolerates duplicate
// prices within a side but rejects an out-of-order slice or one mixing
// exchanges.
func (s BookSlice) Validate() error {
	for _, lvl := range s.Bids {
		if lvl.Exchange != s.Exchange {
			return errMixedExchange(s.Exchange, lvl.Exchange)
		}
	}
	for _, lvl := range s.Asks {
		if lvl.Exchange != s.Exchange {
			return errMixedExchange(s.Exchange, lvl.Exchange)
		}
	}
	if !isNonIncreasing(s.Bids) {
		return errUnsorted("bids")
	}
	if !isNonDecreasing(s.Asks) {
		return errUnsorted("asks")
	}
	return nil
}

func isNonIncreasing(levels []Level) bool {
	for i := 1; i < len(levels); i++ {
		if levels[i].Price.GreaterThan(levels[i-1].Price) {
			return false
		}
	}
	return true
}

func isNonDecreasing(levels []Level) bool {
	for i := 1; i < len(levels); i++ {
		if levels[i].Price.LessThan(levels[i-1].Price) {
			return false
		}
	}
	return true
}
