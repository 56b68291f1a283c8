package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/yitech/czsc/adapter"
	"github.com/yitech/czsc/model/bar"
)

// token cancels a Client subscription.
type token struct {
	cancel context.CancelFunc
}

func (t *token) Unsubscribe() { t.cancel() }

// Client is an adapter.BarSource that dials a feed Server over
// WebSocket and reconnects with exponential backoff on error, following
// the same shape as the teacher's subscribeKline/connectAndRead pair.
type Client struct {
	addr string
	log  zerolog.Logger
}

// NewClient creates a Client that dials addr (a ws:// or wss:// URL).
func NewClient(addr string, log zerolog.Logger) *Client {
	return &Client{addr: addr, log: log}
}

func (c *Client) Subscribe(symbol, interval string, handler adapter.BarHandler) (adapter.Token, error) {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		backoff := time.Second
		for {
			if ctx.Err() != nil {
				return
			}
			if err := c.connectAndRead(ctx, handler); err != nil && ctx.Err() == nil {
				c.log.Warn().Err(err).Dur("backoff", backoff).Msg("feed client: reconnecting")
				select {
				case <-time.After(backoff):
				case <-ctx.Done():
					return
				}
				if backoff < 30*time.Second {
					backoff *= 2
				}
			} else {
				backoff = time.Second
			}
		}
	}()

	return &token{cancel: cancel}, nil
}

// connectAndRead maintains a single WebSocket session until ctx is
// cancelled or an error occurs.
func (c *Client) connectAndRead(ctx context.Context, handler adapter.BarHandler) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	}()

	for {
		var w wireBar
		if err := conn.ReadJSON(&w); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		handler(fromWire(w))
	}
}

// Backfill is not supported over the live feed protocol; historical
// replay goes through adapter/csv instead.
func (c *Client) Backfill(symbol, interval string, start, end time.Time) ([]bar.Bar, error) {
	return nil, fmt.Errorf("feed: Backfill not supported by the live client, use adapter/csv")
}

func (c *Client) Close() error { return nil }
