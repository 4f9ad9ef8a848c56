// Package logging builds the process-wide *zap.Logger, grounded on
// Aidin1998-finalex/services/marketfeeds/market-maker-bot/logging/logger.go.
// Unlike that example, the logger here is constructed once and passed
// explicitly into every component's constructor rather than read back out
// of a package-level variable, so components stay testable with
// zap.NewNop().
package logging

import (
	"os"

	"go.uber.org/zap"
)

// New builds a production logger, or a development logger (human-readable,
// debug level) when debug is true or the DEBUG environment variable is
// non-empty. This mirrors the teacher's own
// config.DebugMode switch in domain/orderbook-maintainer.go, generalized
// from a single log.Printf gate to a full logger configuration.
func New(debug bool) (*zap.Logger, error) {
	if debug || os.Getenv("DEBUG") != "" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
