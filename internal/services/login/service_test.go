package login_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"cordlink/internal/domain"
	"cordlink/internal/gateway"
	loginsvc "cordlink/internal/services/login"
)

// scriptedConn plays the whole happy-path gateway script against the session.
type scriptedConn struct {
	in     chan []byte
	closed chan struct{}
	once   sync.Once

	exchanged chan *rsa.PublicKey
}

func newScriptedConn() *scriptedConn {
	return &scriptedConn{
		in:        make(chan []byte, 8),
		closed:    make(chan struct{}),
		exchanged: make(chan *rsa.PublicKey, 1),
	}
}

func (c *scriptedConn) start() {
	b, _ := json.Marshal(map[string]any{"op": "hello", "heartbeat_interval": 30000, "timeout_ms": 45000})
	c.in <- b
}

func (c *scriptedConn) WriteJSON(v any) error {
	msg, ok := v.(gateway.ClientMessage)
	if !ok {
		return errors.New("unexpected write type")
	}
	switch msg.Op {
	case gateway.OpInit:
		der, err := base64.StdEncoding.DecodeString(msg.EncodedPublicKey)
		if err != nil {
			return err
		}
		key, err := x509.ParsePKIXPublicKey(der)
		if err != nil {
			return err
		}
		pub := key.(*rsa.PublicKey)
		c.exchanged <- pub

		sum := sha256.Sum256(der)
		fp := base64.RawURLEncoding.EncodeToString(sum[:])
		b, _ := json.Marshal(map[string]any{"op": "pending_remote_init", "fingerprint": fp})
		c.in <- b

		payload, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, []byte("123:4567:0:tester"), nil)
		if err != nil {
			return err
		}
		b, _ = json.Marshal(map[string]any{
			"op":                     "pending_ticket",
			"encrypted_user_payload": base64.StdEncoding.EncodeToString(payload),
		})
		c.in <- b

		b, _ = json.Marshal(map[string]any{"op": "pending_login", "ticket": "the-ticket"})
		c.in <- b
	}
	return nil
}

func (c *scriptedConn) ReadMessage() ([]byte, error) {
	select {
	case b := <-c.in:
		return b, nil
	case <-c.closed:
		return nil, errors.New("connection closed")
	}
}

func (c *scriptedConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

type scriptedDialer struct {
	conn *scriptedConn
}

func (d *scriptedDialer) Dial(ctx context.Context) (domain.Transport, error) {
	d.conn.start()
	return d.conn, nil
}

type scriptedExchanger struct {
	conn  *scriptedConn
	token string
}

func (e *scriptedExchanger) ExchangeTicket(ctx context.Context, ticket string) ([]byte, error) {
	if ticket != "the-ticket" {
		return nil, errors.New("unexpected ticket")
	}
	select {
	case pub := <-e.conn.exchanged:
		return rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, []byte(e.token), nil)
	case <-time.After(time.Second):
		return nil, errors.New("no public key captured")
	}
}

type memoryTokens struct {
	mu    sync.Mutex
	token string
	saved bool
}

func (m *memoryTokens) SaveToken(passphrase, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.saved = token, true
	return nil
}

func (m *memoryTokens) LoadToken(passphrase string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.saved, nil
}

func (m *memoryTokens) DeleteToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token, m.saved = "", false
	return nil
}

func TestLogin_PersistsToken(t *testing.T) {
	conn := newScriptedConn()
	tokens := &memoryTokens{}
	svc := loginsvc.New(
		&scriptedDialer{conn: conn},
		&scriptedExchanger{conn: conn, token: "tok.abc"},
		tokens,
		"", 1, nil,
	)

	got, err := svc.Login(context.Background(), "pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got != "tok.abc" {
		t.Fatalf("token = %q, want tok.abc", got)
	}

	stored, ok, err := tokens.LoadToken("pass")
	if err != nil || !ok || stored != "tok.abc" {
		t.Fatalf("stored token = (%q, %v, %v), want (tok.abc, true, nil)", stored, ok, err)
	}

	if phase, ok := svc.Phases().Load(); !ok || phase.Kind != domain.PhaseCompleted {
		t.Fatalf("final phase = %v, want completed", phase.Kind)
	}
}
