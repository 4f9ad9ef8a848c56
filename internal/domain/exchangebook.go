package domain

// ExchangeBook is the Merger's per-exchange retained copy of the most recent
// BookSlice. It is created lazily on first arrival from that exchange and
// overwritten atomically, in the single-consumer sense, on every later
// arrival: the Merger never tracks timestamps, it simply forgets whatever
// was there before.
type ExchangeBook struct {
	Exchange Exchange
	Bids     []Level
	Asks     []Level
}

// Install replaces the book's contents with slice, which must already carry
// this exchange (the caller, the Merger, is responsible for routing by
// Exchange before calling Install).
func (b *ExchangeBook) Install(slice BookSlice) {
	b.Exchange = slice.Exchange
	b.Bids = slice.Bids
	b.Asks = slice.Asks
}
