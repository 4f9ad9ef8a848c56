package domain_test

import (
	"testing"

	"github.com/spooky-finn/orderbook-merger/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestParsePair(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    domain.Pair
	}{
		{"ValidLowercase", "eth/btc", false, domain.Pair{Base: domain.AssetETH, Quote: domain.AssetBTC}},
		{"ValidUppercase", "BTC/USDT", false, domain.Pair{Base: domain.AssetBTC, Quote: domain.AssetUSDT}},
		{"MixedCase", "Eth/BtC", false, domain.Pair{Base: domain.AssetETH, Quote: domain.AssetBTC}},
		{"MissingSeparator", "ethbtc", true, domain.Pair{}},
		{"UnknownAsset", "eth/xyz", true, domain.Pair{}},
		{"SameAsset", "btc/btc", true, domain.Pair{}},
		{"Empty", "", true, domain.Pair{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := domain.ParsePair(tt.input)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, pair)
		})
	}
}

func TestPair_Join(t *testing.T) {
	pair := domain.Pair{Base: domain.AssetETH, Quote: domain.AssetBTC}
	assert.Equal(t, "ETHBTC", pair.Join(""))
	assert.Equal(t, "ETH-BTC", pair.Join("-"))
}

func TestPair_String(t *testing.T) {
	pair := domain.Pair{Base: domain.AssetETH, Quote: domain.AssetBTC}
	assert.Equal(t, "ETH/BTC", pair.String())
}
