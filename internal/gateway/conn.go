package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"cordlink/internal/domain"
)

// WSDialer opens websocket Transports to the remote auth gateway.
type WSDialer struct {
	URL    string // e.g. wss://remote-auth-gateway.discord.gg/?v=2
	Origin string // sent as the Origin header; the gateway rejects blank origins
}

// Dial connects and wraps the socket as a domain.Transport.
func (d *WSDialer) Dial(ctx context.Context) (domain.Transport, error) {
	header := http.Header{}
	if d.Origin != "" {
		header.Set("Origin", d.Origin)
	}
	ws, resp, err := websocket.DefaultDialer.DialContext(ctx, d.URL, header)
	if resp != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return &wsConn{ws: ws}, nil
}

// wsConn adapts a gorilla websocket to the Transport contract. Reads happen
// from a single goroutine (the session's reader) and writes from the session
// loop, which matches gorilla's one-reader/one-writer rule.
type wsConn struct {
	ws *websocket.Conn

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func (c *wsConn) WriteJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteJSON(v)
}

func (c *wsConn) ReadMessage() ([]byte, error) {
	for {
		kind, payload, err := c.ws.ReadMessage()
		if err != nil {
			return nil, err
		}
		if kind == websocket.TextMessage {
			return payload, nil
		}
		// Binary and control frames are not part of the protocol; skip.
	}
}

func (c *wsConn) Close() error {
	c.closeOnce.Do(func() {
		c.writeMu.Lock()
		deadline := time.Now().Add(time.Second)
		_ = c.ws.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			deadline,
		)
		c.writeMu.Unlock()
		c.closeErr = c.ws.Close()
	})
	return c.closeErr
}

// Compile-time assertion that WSDialer implements domain.Dialer.
var _ domain.Dialer = (*WSDialer)(nil)
