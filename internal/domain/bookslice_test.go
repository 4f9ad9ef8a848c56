package domain_test

import (
	"testing"

	"github.com/spooky-finn/orderbook-merger/internal/domain"
	"github.com/stretchr/testify/assert"
)

func mustLevel(t *testing.T, price, amount string, exchange domain.Exchange) domain.Level {
	t.Helper()
	lvl, err := domain.ParseLevel(price, amount, exchange)
	assert.NoError(t, err)
	return lvl
}

func TestBookSlice_Validate(t *testing.T) {
	binance := domain.ExchangeBinance
	kucoin := domain.ExchangeKucoin

	tests := []struct {
		name        string
		slice       domain.BookSlice
		expectError bool
	}{
		{
			name: "ValidSortedSlice",
			slice: domain.BookSlice{
				Exchange: binance,
				Bids: []domain.Level{
					mustLevel(t, "100", "1", binance),
					mustLevel(t, "99", "1", binance),
				},
				Asks: []domain.Level{
					mustLevel(t, "101", "1", binance),
					mustLevel(t, "102", "1", binance),
				},
			},
			expectError: false,
		},
		{
			name: "UnsortedBids",
			slice: domain.BookSlice{
				Exchange: binance,
				Bids: []domain.Level{
					mustLevel(t, "99", "1", binance),
					mustLevel(t, "100", "1", binance),
				},
			},
			expectError: true,
		},
		{
			name: "UnsortedAsks",
			slice: domain.BookSlice{
				Exchange: binance,
				Asks: []domain.Level{
					mustLevel(t, "102", "1", binance),
					mustLevel(t, "101", "1", binance),
				},
			},
			expectError: true,
		},
		{
			name: "MixedExchange",
			slice: domain.BookSlice{
				Exchange: binance,
				Bids:     []domain.Level{mustLevel(t, "100", "1", kucoin)},
			},
			expectError: true,
		},
		{
			name: "DuplicatePriceTolerated",
			slice: domain.BookSlice{
				Exchange: binance,
				Bids: []domain.Level{
					mustLevel(t, "100", "1", binance),
					mustLevel(t, "100", "2", binance),
				},
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slice.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
