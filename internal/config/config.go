// Package config parses and validates the CLI-facing configuration and
// loads process environment overrides via godotenv, the same dependency the
// teacher and rahjooh-CryptoTrade's main.go both use for .env loading.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/spooky-finn/orderbook-merger/internal/domain"
)

const (
	// DefaultDepth is N when --depth is not given.
	DefaultDepth = 10
	// DefaultBind is the project's configured gRPC bind address.
	DefaultBind = "[::1]:50501"
	// DefaultMetricsBind is where /metrics is served by default.
	DefaultMetricsBind = ":9101"
	// DefaultClientConnect is where the CLI client dials by default.
	DefaultClientConnect = "[::1]:50501"
	// DefaultExchanges is the comma-separated --exchanges value when none is
	// given: every exchange this binary knows how to feed from.
	DefaultExchanges = "binance,kucoin"
)

// ServerConfig is the validated configuration for `orderbook-merger server`.
type ServerConfig struct {
	Pair        domain.Pair
	Depth       int
	Bind        string
	MetricsBind string
	Exchanges   []domain.Exchange
	Debug       bool
}

// NewServerConfig validates the raw CLI inputs for the server subcommand.
// Any error here is a configuration error: the caller should exit with
// code 2 without starting anything.
func NewServerConfig(pairStr string, depth int, bind, metricsBind, exchangesStr string, debug bool) (ServerConfig, error) {
	pair, err := domain.ParsePair(pairStr)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid --pair: %w", err)
	}
	if depth <= 0 {
		return ServerConfig{}, fmt.Errorf("invalid --depth %d: must be positive", depth)
	}
	if bind == "" {
		return ServerConfig{}, fmt.Errorf("invalid --bind: must not be empty")
	}
	exchanges, err := parseExchanges(exchangesStr)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid --exchanges: %w", err)
	}

	return ServerConfig{
		Pair:        pair,
		Depth:       depth,
		Bind:        bind,
		MetricsBind: metricsBind,
		Exchanges:   exchanges,
		Debug:       debug,
	}, nil
}

// parseExchanges splits a comma-separated list of exchange names and
// resolves each through domain.ParseExchange, so an operator can run this
// binary against a subset of exchanges (e.g. during a provider outage)
// without a code change.
func parseExchanges(s string) ([]domain.Exchange, error) {
	parts := strings.Split(s, ",")
	exchanges := make([]domain.Exchange, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		exchange, err := domain.ParseExchange(name)
		if err != nil {
			return nil, err
		}
		exchanges = append(exchanges, exchange)
	}
	if len(exchanges) == 0 {
		return nil, fmt.Errorf("at least one exchange is required")
	}
	return exchanges, nil
}

// ClientConfig is the validated configuration for `orderbook-merger client`.
type ClientConfig struct {
	Connect string
	Debug   bool
}

// NewClientConfig validates the raw CLI inputs for the client subcommand.
func NewClientConfig(connect string, debug bool) (ClientConfig, error) {
	if connect == "" {
		return ClientConfig{}, fmt.Errorf("invalid --connect: must not be empty")
	}
	return ClientConfig{Connect: connect, Debug: debug}, nil
}

// LoadDotEnv loads a .env file if present, so the Kucoin API credentials
// (KUCOIN_API_KEY, KUCOIN_SECRET_KEY, KUCOIN_PASSPHRASE) can be supplied
// without shell export. Exchange endpoints are not read from the
// environment. A
// missing .env file is not an error; anything else reading it is.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
