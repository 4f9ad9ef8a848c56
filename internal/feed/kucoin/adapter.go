// Package kucoin implements the Kucoin feed adapter, grounded on
// provider/kucoin/sync-api.go and provider/kucoin/stream-client.go from the
// teacher repository: a public websocket token is fetched over HTTP via
// github.com/Kucoin/kucoin-go-sdk, then the returned endpoint is dialed with
// recws.
package kucoin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	kucoinsdk "github.com/Kucoin/kucoin-go-sdk"
	"github.com/recws-org/recws"
	"go.uber.org/zap"

	"github.com/spooky-finn/orderbook-merger/internal/domain"
	"github.com/spooky-finn/orderbook-merger/internal/feed"
	"github.com/spooky-finn/orderbook-merger/internal/feed/buffer"
	"github.com/spooky-finn/orderbook-merger/internal/metrics"
)

const handshakeTimeout = 5 * time.Second

type depthChanges struct {
	Asks [][2]string `json:"asks"`
	Bids [][2]string `json:"bids"`
}

type depthUpdate struct {
	Topic   string       `json:"topic"`
	Subject string       `json:"subject"`
	Data    depthChanges `json:"data"`
}

// wsConnOpts mirrors the subset of KucoinHttpAPI.WsConnOpts's response this
// adapter needs (provider/kucoin/sync-api.go's KucoinWSConnOpts), kept as a
// local type rather than depending on the SDK's own token model shape.
type wsConnOpts struct {
	Token           string `json:"token"`
	InstanceServers []struct {
		Endpoint string `json:"endpoint"`
	} `json:"instanceServers"`
}

// Adapter is the Kucoin feed.Adapter.
type Adapter struct {
	depth      int
	log        *zap.Logger
	apiService *kucoinsdk.ApiService
}

// New builds a Kucoin Adapter backed by the public REST API for token
// retrieval; depth levels per side are kept.
func New(depth int, log *zap.Logger) *Adapter {
	return &Adapter{
		depth: depth,
		log:   log,
		apiService: kucoinsdk.NewApiService(
			kucoinsdk.ApiKeyOption(os.Getenv("KUCOIN_API_KEY")),
			kucoinsdk.ApiSecretOption(os.Getenv("KUCOIN_SECRET_KEY")),
			kucoinsdk.ApiPassPhraseOption(os.Getenv("KUCOIN_PASSPHRASE")),
		),
	}
}

// Exchange identifies this adapter's Exchange.
func (a *Adapter) Exchange() domain.Exchange {
	return domain.ExchangeKucoin
}

func (a *Adapter) wsEndpoint() (string, error) {
	resp, err := a.apiService.WebSocketPublicToken()
	if err != nil {
		return "", fmt.Errorf("kucoin: failed to get ws token: %w", err)
	}

	token := &wsConnOpts{}
	if err := json.Unmarshal([]byte(resp.RawData), token); err != nil {
		return "", fmt.Errorf("kucoin: failed to unmarshal ws token: %w", err)
	}
	if len(token.InstanceServers) == 0 {
		return "", fmt.Errorf("kucoin: no instance servers returned")
	}
	server := token.InstanceServers[0]
	return fmt.Sprintf("%s?token=%s", server.Endpoint, token.Token), nil
}

// Run connects to Kucoin's public level2 feed and streams parsed BookSlice
// values until ctx is cancelled. Read errors are logged and the read is
// retried while recws reconnects; they never end Run.
func (a *Adapter) Run(ctx context.Context, pair domain.Pair, ingress chan<- domain.BookSlice) error {
	log := a.log.With(zap.String("exchange", "kucoin"), zap.Stringer("pair", pair))

	wsURL, err := a.wsEndpoint()
	if err != nil {
		return err
	}

	conn := &recws.RecConn{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
		NonVerbose:       false,
	}
	conn.Dial(wsURL, nil)
	defer conn.Close()

	topic := fmt.Sprintf("/market/level2:%s", strings.ToUpper(pair.Join("-")))
	if err := conn.WriteJSON(map[string]interface{}{
		"id":             1,
		"type":           "subscribe",
		"topic":          topic,
		"privateChannel": false,
		"response":       true,
	}); err != nil {
		return fmt.Errorf("kucoin: failed to send subscribe frame: %w", err)
	}
	log.Info("subscribed to level2 stream", zap.String("topic", topic))

	raw := buffer.New()
	go a.readLoop(ctx, conn, raw, log)

	for {
		frame, ok := raw.Pop()
		if !ok {
			return nil
		}

		var upd depthUpdate
		if err := json.Unmarshal(frame, &upd); err != nil {
			log.Warn("failed to parse frame", zap.Error(err))
			metrics.FeedTransientErrors.WithLabelValues("kucoin").Inc()
			continue
		}
		if upd.Subject != "trade.l2update" || upd.Topic != topic {
			continue
		}

		slice, err := a.toBookSlice(upd.Data)
		if err != nil {
			log.Warn("failed to convert depth update", zap.Error(err))
			metrics.FeedTransientErrors.WithLabelValues("kucoin").Inc()
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
			metrics.FeedTransientErrors.WithLabelValues("kucoin").Inc()
			continue
		}
		raw.Push(msg)
	}
}

func (a *Adapter) toBookSlice(d depthChanges) (domain.BookSlice, error) {
	bids, err := feed.TopNSorted(d.Bids, domain.ExchangeKucoin, a.depth, true)
	if err != nil {
		return domain.BookSlice{}, err
	}
	asks, err := feed.TopNSorted(d.Asks, domain.ExchangeKucoin, a.depth, false)
	if err != nil {
		return domain.BookSlice{}, err
	}
	return domain.BookSlice{Exchange: domain.ExchangeKucoin, Bids: bids, Asks: asks}, nil
}
