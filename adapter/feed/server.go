// Package feed replaces the teacher's gRPC candle-streaming server and
// client with a WebSocket + JSON equivalent (see DESIGN.md for why
// grpc/protobuf were dropped). Server broadcasts bars to any number of
// connected clients; Client dials a Server and reconnects with backoff.
package feed

import (
	"context"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/yitech/czsc/model/bar"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wireBar is the JSON frame exchanged between Server and Client.
type wireBar struct {
	Time  int64   `json:"time"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

func toWire(b bar.Bar) wireBar {
	return wireBar{Time: b.Time, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close}
}

func fromWire(w wireBar) bar.Bar {
	return bar.New(w.Time, w.Open, w.High, w.Low, w.Close)
}

// Server streams bars to any number of connected WebSocket clients.
type Server struct {
	log zerolog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]chan bar.Bar
}

// NewServer creates an empty Server.
func NewServer(log zerolog.Logger) *Server {
	return &Server{log: log, clients: make(map[*websocket.Conn]chan bar.Bar)}
}

// Serve upgrades the request to a WebSocket and streams bars to it until
// the client disconnects.
func (s *Server) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("feed: upgrade failed")
		return
	}
	defer conn.Close()

	ch := make(chan bar.Bar, 64)
	s.mu.Lock()
	s.clients[conn] = ch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	// Clients never send application data; this goroutine exists only to
	// notice when the peer closes the connection.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()

	for b := range ch {
		if err := conn.WriteJSON(toWire(b)); err != nil {
			return
		}
	}
}

// Broadcast sends b to every connected client. A client whose buffer is
// full is dropped rather than allowed to stall the feed.
func (s *Server) Broadcast(b bar.Bar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn, ch := range s.clients {
		select {
		case ch <- b:
		default:
			s.log.Warn().Msg("feed: dropping slow client")
			delete(s.clients, conn)
			close(ch)
		}
	}
}

// Synth pushes a synthetic random-walk bar to Broadcast once per tick,
// mirroring the teacher's placeholder candle generator in cmd/srv. It
// blocks until ctx is cancelled.
func Synth(ctx context.Context, s *Server, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	price := 40000.0
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			open := price
			price += (rand.Float64() - 0.5) * 200
			high := open
			if price > high {
				high = price
			}
			high += rand.Float64() * 50
			low := open
			if price < low {
				low = price
			}
			low -= rand.Float64() * 50
			s.Broadcast(bar.New(now.UnixMilli(), open, high, low, price))
		}
	}
}
