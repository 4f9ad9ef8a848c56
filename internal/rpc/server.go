// Package rpc implements the RPC surface: registers a subscriber
// with the registry on every BookSummary call and relays each Summary to
// the client stream until the client disconnects or the stream errors,
// grounded on rpc/server.go and rpc/methods.go from the teacher repository.
package rpc

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spooky-finn/orderbook-merger/internal/domain"
	"github.com/spooky-finn/orderbook-merger/internal/registry"
	"github.com/spooky-finn/orderbook-merger/internal/rpc/pb"
)

// Subscriber is the subset of the registry the RPC surface depends on.
type Subscriber interface {
	Subscribe() (registry.Handle, <-chan domain.Summary)
	Unsubscribe(handle registry.Handle)
}

// Server implements pb.OrderbookAggregatorServer.
type Server struct {
	pb.UnimplementedOrderbookAggregatorServer
	registry Subscriber
	log      *zap.Logger
}

// New builds a Server backed by reg.
func New(reg Subscriber, log *zap.Logger) *Server {
	return &Server{registry: reg, log: log}
}

// BookSummary registers a subscriber and relays every Summary it receives
// to the stream until the client disconnects or the stream errors, then
// unregisters.
func (s *Server) BookSummary(_ *pb.Empty, stream pb.OrderbookAggregator_BookSummaryServer) error {
	handle, egress := s.registry.Subscribe()
	log := s.log.With(zap.Stringer("subscriber", handle))
	log.Info("subscriber connected")
	defer func() {
		s.registry.Unsubscribe(handle)
		log.Info("subscriber disconnected")
	}()

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case summary, ok := <-egress:
			if !ok {
				return nil
			}
			if err := stream.Send(toWire(summary)); err != nil {
				log.Warn("failed to send summary", zap.Error(err))
				return err
			}
		}
	}
}

func toWire(summary domain.Summary) *pb.Summary {
	return &pb.Summary{
		Spread: decimalToFloat(summary.Spread),
		Bids:   toWireLevels(summary.Bids),
		Asks:   toWireLevels(summary.Asks),
	}
}

func toWireLevels(levels []domain.Level) []*pb.Level {
	out := make([]*pb.Level, len(levels))
	for i, lvl := range levels {
		out[i] = &pb.Level{
			Exchange: lvl.Exchange.String(),
			Price:    decimalToFloat(lvl.Price),
			Amount:   decimalToFloat(lvl.Amount),
		}
	}
	return out
}

// decimalToFloat is the single widening conversion from the internal
// decimal-safe representation to the wire's double, performed only at
// serialization time.
func decimalToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
