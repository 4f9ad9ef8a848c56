package domain

import "fmt"

// Exchange is a closed enumeration naming each supported feed source. Rank is
// the deterministic tie-breaker used by the Merger when two exchanges quote
// the same price: the lower rank wins.
type Exchange int

const (
	ExchangeUnknown Exchange = iota
	ExchangeBinance
	ExchangeKucoin
)

// AllExchanges enumerates every known Exchange in rank order. Its length is
// the k in the Merger's k-way merge.
var AllExchanges = []Exchange{ExchangeBinance, ExchangeKucoin}

var exchangeNames = map[Exchange]string{
	ExchangeBinance: "binance",
	ExchangeKucoin:  "kucoin",
}

var exchangeRanks = map[Exchange]int{
	ExchangeBinance: 0,
	ExchangeKucoin:  1,
}

func (e Exchange) String() string {
	if name, ok := exchangeNames[e]; ok {
		return name
	}
	return "unknown"
}

// Rank returns the tie-breaking rank for e; lower wins.
func (e Exchange) Rank() int {
	return exchangeRanks[e]
}

// ParseExchange maps a provider name to its Exchange value.
func ParseExchange(name string) (Exchange, error) {
	for exchange, n := range exchangeNames {
		if n == name {
			return exchange, nil
		}
	}
	return ExchangeUnknown, fmt.Errorf("unknown exchange %q", name)
}
