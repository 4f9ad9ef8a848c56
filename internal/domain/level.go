package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Level is one (price, amount, exchange) triple in a book. price and amount
// are represented as decimal.Decimal rather than float64 so comparisons
// across exchanges are exact and total, never subject to binary floating
// point drift. Feed payloads are themselves decimal strings, so parsing
// straight into decimal.Decimal costs nothing extra over
// strconv.ParseFloat and removes an entire class of flaky comparisons at
// the merge step.
type Level struct {
	Price    decimal.Decimal
	Amount   decimal.Decimal
	Exchange Exchange
}

// ParseLevel parses a [price, amount] pair of decimal strings as received
// from an exchange payload, e.g. ["0.06754400", "31.99050000"].
func ParseLevel(priceStr, amountStr string, exchange Exchange) (Level, error) {
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return Level{}, fmt.Errorf("invalid price %q: %w", priceStr, err)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return Level{}, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}
	if price.IsNegative() || amount.IsNegative() {
		return Level{}, fmt.Errorf("negative price or amount: price=%s amount=%s", priceStr, amountStr)
	}
	return Level{Price: price, Amount: amount, Exchange: exchange}, nil
}
