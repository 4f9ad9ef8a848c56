package domain

import (
	"fmt"
	"strings"
)

// Pair is an ordered (base, quote) tuple. It exists for the lifetime of the
// process: one instance of this binary ever serves exactly one Pair.
type Pair struct {
	Base  Asset
	Quote Asset
}

// ParsePair parses a user string of the form "base/quote", case-insensitive.
func ParsePair(s string) (Pair, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return Pair{}, fmt.Errorf("invalid pair %q: expected BASE/QUOTE", s)
	}

	base, err := ParseAsset(parts[0])
	if err != nil {
		return Pair{}, fmt.Errorf("invalid pair %q: %w", s, err)
	}

	quote, err := ParseAsset(parts[1])
	if err != nil {
		return Pair{}, fmt.Errorf("invalid pair %q: %w", s, err)
	}

	if base == quote {
		return Pair{}, fmt.Errorf("invalid pair %q: base and quote must differ", s)
	}

	return Pair{Base: base, Quote: quote}, nil
}

// Join renders the pair as a single token using sep between base and quote,
// e.g. Join("") => "ETHBTC", Join("-") => "ETH-BTC".
func (p Pair) Join(sep string) string {
	return fmt.Sprintf("%s%s%s", p.Base, sep, p.Quote)
}

func (p Pair) String() string {
	return fmt.Sprintf("%s/%s", p.Base, p.Quote)
}
