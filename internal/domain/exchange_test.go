package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExchange(t *testing.T) {
	t.Run("binance", func(t *testing.T) {
		exchange, err := ParseExchange("binance")
		require.NoError(t, err)
		assert.Equal(t, ExchangeBinance, exchange)
	})

	t.Run("kucoin", func(t *testing.T) {
		exchange, err := ParseExchange("kucoin")
		require.NoError(t, err)
		assert.Equal(t, ExchangeKucoin, exchange)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseExchange("bitstamp")
		assert.Error(t, err)
	})
}
