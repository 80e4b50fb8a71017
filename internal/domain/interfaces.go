package domain

import "context"

// Transport is one message-framed, bidirectional connection to the remote
// auth gateway. A session owns exactly one Transport at a time and always
// closes it before discarding it.
type Transport interface {
	// WriteJSON encodes v as a JSON text frame and sends it.
	WriteJSON(v any) error
	// ReadMessage blocks until the next text frame arrives. It returns an
	// error once the connection is closed, locally or remotely.
	ReadMessage() ([]byte, error)
	// Close tears the connection down. Safe to call more than once.
	Close() error
}

// Dialer opens a fresh Transport for each connection attempt.
type Dialer interface {
	Dial(ctx context.Context) (Transport, error)
}

// TicketExchanger converts a one-time ticket into an encrypted token blob.
// The blob is encrypted against the public key the session handed out during
// the handshake; the caller decrypts it with the matching private key.
type TicketExchanger interface {
	ExchangeTicket(ctx context.Context, ticket string) ([]byte, error)
}

// TokenStore persists the session token obtained from a completed login.
type TokenStore interface {
	SaveToken(passphrase, token string) error
	LoadToken(passphrase string) (token string, ok bool, err error)
	DeleteToken() error
}
