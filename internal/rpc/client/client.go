// Package client implements the CLI client: connect, issue
// BookSummary, print each Summary to stdout, no reconnection.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/spooky-finn/orderbook-merger/internal/rpc/pb"
)

// Run connects to addr, opens a BookSummary stream, and prints every
// received Summary in a human-readable form until ctx is cancelled or the
// stream ends.
func Run(ctx context.Context, addr string, log *zap.Logger) error {
	conn, err := grpc.DialContext(ctx, addr, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock())
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", addr, err)
	}
	defer conn.Close()

	client := pb.NewOrderbookAggregatorClient(conn)
	stream, err := client.BookSummary(ctx, &pb.Empty{})
	if err != nil {
		return fmt.Errorf("failed to open book summary stream: %w", err)
	}

	for {
		summary, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			log.Info("server closed the stream")
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}
		printSummary(summary)
	}
}

func printSummary(s *pb.Summary) {
	fmt.Printf("spread=%g\n", s.Spread)
	for _, bid := range s.Bids {
		fmt.Printf("  bid  %-8s price=%-18g amount=%g\n", bid.Exchange, bid.Price, bid.Amount)
	}
	for _, ask := range s.Asks {
		fmt.Printf("  ask  %-8s price=%-18g amount=%g\n", ask.Exchange, ask.Price, ask.Amount)
	}
}
