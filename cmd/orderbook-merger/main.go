// Command orderbook-merger is the process harness: CLI parsing,
// logging initialization, and signal-driven graceful shutdown. It
// hosts two subcommands, "server" and "client", grounded on main.go and
// rpc/server.go from the teacher repository and on the Cli/Commands
// structure in original_source/src/main.rs.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/spooky-finn/orderbook-merger/internal/config"
	"github.com/spooky-finn/orderbook-merger/internal/domain"
	"github.com/spooky-finn/orderbook-merger/internal/feed"
	feedbinance "github.com/spooky-finn/orderbook-merger/internal/feed/binance"
	feedkucoin "github.com/spooky-finn/orderbook-merger/internal/feed/kucoin"
	"github.com/spooky-finn/orderbook-merger/internal/logging"
	"github.com/spooky-finn/orderbook-merger/internal/merger"
	"github.com/spooky-finn/orderbook-merger/internal/metrics"
	"github.com/spooky-finn/orderbook-merger/internal/registry"
	"github.com/spooky-finn/orderbook-merger/internal/rpc"
	"github.com/spooky-finn/orderbook-merger/internal/rpc/client"
	"github.com/spooky-finn/orderbook-merger/internal/rpc/pb"
	"github.com/spooky-finn/orderbook-merger/internal/shutdown"
)

// shutdownDeadline bounds how long the coordinator waits for every task to
// drain before forcing a non-zero exit.
const shutdownDeadline = 10 * time.Second

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "server":
		err = runServerCommand(os.Args[2:])
	case "client":
		err = runClientCommand(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: orderbook-merger <server|client> [flags]")
}

func runServerCommand(args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	pairStr := fs.String("pair", "eth/btc", "trading pair, BASE/QUOTE")
	depth := fs.Int("depth", config.DefaultDepth, "per-side depth N")
	bind := fs.String("bind", config.DefaultBind, "gRPC bind address")
	metricsBind := fs.String("metrics-bind", config.DefaultMetricsBind, "metrics bind address")
	exchanges := fs.String("exchanges", config.DefaultExchanges, "comma-separated exchanges to feed from")
	debug := fs.Bool("debug", false, "enable development logging")
	if err := fs.Parse(args); err != nil {
		usage()
		os.Exit(2)
	}

	cfg, err := config.NewServerConfig(*pairStr, *depth, *bind, *metricsBind, *exchanges, *debug)
	if err != nil {
		usage()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	return runServer(cfg, log)
}

// selectAdapters builds the feed.Adapter set named by cfg.Exchanges.
func selectAdapters(cfg config.ServerConfig, log *zap.Logger) []feed.Adapter {
	available := map[domain.Exchange]feed.Adapter{
		domain.ExchangeBinance: feedbinance.New(cfg.Depth, log),
		domain.ExchangeKucoin:  feedkucoin.New(cfg.Depth, log),
	}

	adapters := make([]feed.Adapter, 0, len(cfg.Exchanges))
	for _, exchange := range cfg.Exchanges {
		if adapter, ok := available[exchange]; ok {
			adapters = append(adapters, adapter)
		}
	}
	return adapters
}

func runServer(cfg config.ServerConfig, log *zap.Logger) error {
	coord := shutdown.New(log)
	ctx := coord.Context()

	ingress := make(chan domain.BookSlice, 256)
	reg := registry.New(log)
	m := merger.New(ingress, reg, cfg.Depth, log)

	coord.Go(func() { m.Run(ctx) })

	adapters := selectAdapters(cfg, log)

	var exited int32
	var everyAdapterDied atomic.Bool
	for _, adapter := range adapters {
		adapter := adapter
		coord.Go(func() {
			if err := adapter.Run(ctx, cfg.Pair, ingress); err != nil {
				log.Error("feed adapter exited with a fatal error", zap.Stringer("exchange", adapter.Exchange()), zap.Error(err))
			}
			if int(atomic.AddInt32(&exited, 1)) == len(adapters) {
				log.Error("every feed adapter has terminated, shutting down")
				everyAdapterDied.Store(true)
				coord.Cancel()
			}
		})
	}

	coord.Go(func() {
		if err := metrics.Serve(ctx, cfg.MetricsBind, log); err != nil {
			log.Error("metrics server exited with an error", zap.Error(err))
		}
	})

	listener, err := net.Listen("tcp", cfg.Bind)
	if err != nil {
		log.Error("failed to bind gRPC listener", zap.Error(err))
		coord.Cancel()
		coord.Wait(shutdownDeadline)
		return fmt.Errorf("failed to bind %s: %w", cfg.Bind, err)
	}

	grpcServer := grpc.NewServer()
	pb.RegisterOrderbookAggregatorServer(grpcServer, rpc.New(reg, log))

	coord.Go(func() {
		log.Info("orderbook-merger server listening", zap.String("addr", cfg.Bind), zap.Stringer("pair", cfg.Pair))
		if err := grpcServer.Serve(listener); err != nil {
			log.Error("grpc server exited with an error", zap.Error(err))
		}
	})

	coord.Go(func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	})

	<-ctx.Done()
	drained := coord.Wait(shutdownDeadline)
	if everyAdapterDied.Load() {
		return fmt.Errorf("every feed adapter terminated, nothing left to feed the merger")
	}
	if !drained {
		os.Exit(1)
	}
	return nil
}

func runClientCommand(args []string) error {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	connect := fs.String("connect", config.DefaultClientConnect, "server address to connect to")
	debug := fs.Bool("debug", false, "enable development logging")
	if err := fs.Parse(args); err != nil {
		usage()
		os.Exit(2)
	}

	cfg, err := config.NewClientConfig(*connect, *debug)
	if err != nil {
		usage()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	coord := shutdown.New(log)
	return client.Run(coord.Context(), cfg.Connect, log)
}
