// Package binance implements the Binance feed adapter, grounded on
// provider/binance/stream-client.go and provider/binance/stream-api.go from
// the teacher repository.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/recws-org/recws"
	"go.uber.org/zap"

	"github.com/spooky-finn/orderbook-merger/internal/domain"
	"github.com/spooky-finn/orderbook-merger/internal/feed"
	"github.com/spooky-finn/orderbook-merger/internal/feed/buffer"
	"github.com/spooky-finn/orderbook-merger/internal/metrics"
)

const (
	endpoint         = "wss://stream.binance.com:9443/stream"
	handshakeTimeout = 5 * time.Second
	keepAlive        = time.Minute * 9
)

// depthUpdate is the payload of a <symbol>@depth stream frame, matching
// provider/binance/stream-api.go's DepthUpdateData.
type depthUpdate struct {
	Bids [][2]string `json:"b"`
	Asks [][2]string `json:"a"`
}

type envelope struct {
	Stream string      `json:"stream"`
	Data   depthUpdate `json:"data"`
}

type subscribeRequest struct {
	ReqID  int      `json:"id"`
	Method string   `json:"method"`
	Params []string `json:"params"`
}

// Adapter is the Binance feed.Adapter.
type Adapter struct {
	depth int
	log   *zap.Logger
}

// New builds a Binance Adapter that truncates every slice to depth levels
// per side.
func New(depth int, log *zap.Logger) *Adapter {
	return &Adapter{depth: depth, log: log}
}

// Exchange identifies this adapter's Exchange.
func (a *Adapter) Exchange() domain.Exchange {
	return domain.ExchangeBinance
}

// Run connects to Binance's combined stream, subscribes to the pair's depth
// topic, and streams parsed BookSlice values until ctx is cancelled. Read
// errors are logged and the read is retried; recws.RecConn reconnects with bounded
// backoff under the hood, so a single transient disconnect no longer
// silently drops this exchange forever the way the original source's
// non-reconnecting client does.
func (a *Adapter) Run(ctx context.Context, pair domain.Pair, ingress chan<- domain.BookSlice) error {
	log := a.log.With(zap.String("exchange", "binance"), zap.Stringer("pair", pair))
	topic := fmt.Sprintf("%s@depth", strings.ToLower(pair.Join("")))

	conn := &recws.RecConn{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
		KeepAliveTimeout: keepAlive,
		NonVerbose:       false,
	}
	conn.Dial(endpoint, nil)
	defer conn.Close()

	if err := conn.WriteJSON(subscribeRequest{ReqID: 1, Method: "SUBSCRIBE", Params: []string{topic}}); err != nil {
		return fmt.Errorf("binance: failed to send subscribe frame: %w", err)
	}
	log.Info("subscribed to depth stream", zap.String("topic", topic))

	raw := buffer.New()
	go a.readLoop(ctx, conn, raw, log)

	for {
		frame, ok := raw.Pop()
		if !ok {
			return nil
		}

		var env envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			log.Warn("failed to parse frame", zap.Error(err))
			metrics.FeedTransientErrors.WithLabelValues("binance").Inc()
			continue
		}
		if env.Stream != topic {
			continue
		}

		slice, err := a.toBookSlice(env.Data)
		if err != nil {
			log.Warn("failed to convert depth update", zap.Error(err))
			metrics.FeedTransientErrors.WithLabelValues("binance").Inc()
			continue
		}

		select {
		case ingress <- slice:
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *Adapter) readLoop(ctx context.Context, conn *recws.RecConn, raw *buffer.Raw, log *zap.Logger) {
	defer raw.Close()
	go func() {
		<-ctx.Done()
		raw.Close()
	}()

	for {
		if ctx.Err() != nil {
			return
		}
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("read error, recws will reconnect", zap.Error(err))
			metrics.FeedTransientErrors.WithLabelValues("binance").Inc()
			continue
		}
		raw.Push(msg)
	}
}

func (a *Adapter) toBookSlice(d depthUpdate) (domain.BookSlice, error) {
	bids, err := feed.TopNSorted(d.Bids, domain.ExchangeBinance, a.depth, true)
	if err != nil {
		return domain.BookSlice{}, err
	}
	asks, err := feed.TopNSorted(d.Asks, domain.ExchangeBinance, a.depth, false)
	if err != nil {
		return domain.BookSlice{}, err
	}
	return domain.BookSlice{Exchange: domain.ExchangeBinance, Bids: bids, Asks: asks}, nil
}
