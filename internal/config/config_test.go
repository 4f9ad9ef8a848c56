package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spooky-finn/orderbook-merger/internal/domain"
)

func TestNewServerConfig(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg, err := NewServerConfig("eth/btc", 10, "[::1]:50501", ":9101", DefaultExchanges, false)
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.Depth)
		assert.Equal(t, "[::1]:50501", cfg.Bind)
		assert.Equal(t, []domain.Exchange{domain.ExchangeBinance, domain.ExchangeKucoin}, cfg.Exchanges)
	})

	t.Run("invalid pair", func(t *testing.T) {
		_, err := NewServerConfig("not-a-pair", 10, "[::1]:50501", ":9101", DefaultExchanges, false)
		assert.Error(t, err)
	})

	t.Run("zero depth", func(t *testing.T) {
		_, err := NewServerConfig("eth/btc", 0, "[::1]:50501", ":9101", DefaultExchanges, false)
		assert.Error(t, err)
	})

	t.Run("negative depth", func(t *testing.T) {
		_, err := NewServerConfig("eth/btc", -1, "[::1]:50501", ":9101", DefaultExchanges, false)
		assert.Error(t, err)
	})

	t.Run("empty bind", func(t *testing.T) {
		_, err := NewServerConfig("eth/btc", 10, "", ":9101", DefaultExchanges, false)
		assert.Error(t, err)
	})

	t.Run("single exchange subset", func(t *testing.T) {
		cfg, err := NewServerConfig("eth/btc", 10, "[::1]:50501", ":9101", "kucoin", false)
		require.NoError(t, err)
		assert.Equal(t, []domain.Exchange{domain.ExchangeKucoin}, cfg.Exchanges)
	})

	t.Run("unknown exchange", func(t *testing.T) {
		_, err := NewServerConfig("eth/btc", 10, "[::1]:50501", ":9101", "bitstamp", false)
		assert.Error(t, err)
	})

	t.Run("empty exchanges", func(t *testing.T) {
		_, err := NewServerConfig("eth/btc", 10, "[::1]:50501", ":9101", "", false)
		assert.Error(t, err)
	})
}

func TestNewClientConfig(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg, err := NewClientConfig("[::1]:50501", true)
		require.NoError(t, err)
		assert.True(t, cfg.Debug)
	})

	t.Run("empty connect", func(t *testing.T) {
		_, err := NewClientConfig("", false)
		assert.Error(t, err)
	})
}

func TestLoadDotEnv_MissingFileIsNotAnError(t *testing.T) {
	err := LoadDotEnv("/nonexistent/path/to/.env")
	assert.NoError(t, err)
}
