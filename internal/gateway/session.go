package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"cordlink/internal/crypto"
	"cordlink/internal/domain"
	"cordlink/internal/util/latest"
	"cordlink/internal/util/memzero"
)

// Production endpoints for the v2 remote auth gateway.
const (
	DefaultGatewayURL = "wss://remote-auth-gateway.discord.gg/?v=2"
	DefaultOrigin     = "https://discord.com"
	DefaultQRCodeURL  = "https://discord.com/ra/%s"
)

// reconnectDelay spaces out dial attempts when the gateway is unreachable.
// Protocol-level reconnects (fresh keypair after a violation) happen
// immediately, matching the gateway's expectations.
const reconnectDelay = time.Second

// Config wires a Session's collaborators.
type Config struct {
	Dialer    domain.Dialer
	Exchanger domain.TicketExchanger

	// QRCodeURL is a template with one %s verb for the verified fingerprint.
	// Defaults to DefaultQRCodeURL.
	QRCodeURL string

	// MaxAttempts bounds connection attempts; zero means unlimited.
	MaxAttempts int

	// Phases receives every observable state change. Optional; Session
	// creates its own cell when nil.
	Phases *latest.Cell[domain.SessionPhase]

	// Logger records reconnect causes. Optional.
	Logger *log.Logger
}

// Session runs the companion-device login flow: an outer loop that owns the
// Transport and keypair lifecycle, and an inner per-connection loop that
// interleaves heartbeats with inbound opcodes until the flow completes,
// is cancelled, or needs a restart.
type Session struct {
	cfg Config
}

// NewSession fills Config defaults and returns a ready Session.
func NewSession(cfg Config) *Session {
	if cfg.QRCodeURL == "" {
		cfg.QRCodeURL = DefaultQRCodeURL
	}
	if cfg.Phases == nil {
		cfg.Phases = latest.New[domain.SessionPhase]()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	return &Session{cfg: cfg}
}

// Phases exposes the latest-value cell the session publishes to. Single
// writer (the session), any number of readers.
func (s *Session) Phases() *latest.Cell[domain.SessionPhase] { return s.cfg.Phases }

// Run executes login attempts until one terminates the flow and returns the
// decrypted session token. Recoverable failures (connect errors, protocol
// violations, missed heartbeats) restart the loop with a fresh keypair and
// never escape to the caller; only cancellation, ticket-exchange failures
// and retry-budget exhaustion do.
func (s *Session) Run(ctx context.Context) (string, error) {
	var lastErr error
	for attempt := 1; ; attempt++ {
		if s.cfg.MaxAttempts > 0 && attempt > s.cfg.MaxAttempts {
			if lastErr == nil {
				lastErr = errors.New("no attempts permitted")
			}
			return "", fmt.Errorf("remote auth gave up after %d attempts: %w", s.cfg.MaxAttempts, lastErr)
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		id := uuid.NewString()

		// One keypair per connection attempt, never reused.
		keys, err := crypto.GenerateKeyPair()
		if err != nil {
			return "", err
		}

		transport, err := s.cfg.Dialer.Dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			s.cfg.Logger.Printf("remote auth %s: connect: %v", id, err)
			if err := sleepCtx(ctx, reconnectDelay); err != nil {
				return "", err
			}
			continue
		}

		res := s.attempt(ctx, transport, keys)
		switch res.outcome {
		case outcomeCompleted:
			return res.token, nil
		case outcomeCancelled:
			return "", res.err
		case outcomeFatal:
			return "", res.err
		default: // outcomeReconnect
			lastErr = res.err
			s.cfg.Logger.Printf("remote auth %s: reconnecting: %v", id, res.err)
		}
	}
}

type attemptOutcome int

const (
	outcomeReconnect attemptOutcome = iota
	outcomeCompleted
	outcomeCancelled
	outcomeFatal
)

// attemptResult is the tagged outcome of one connection attempt.
type attemptResult struct {
	outcome attemptOutcome
	token   string
	err     error
}

func reconnect(err error) attemptResult { return attemptResult{outcome: outcomeReconnect, err: err} }
func fatal(err error) attemptResult     { return attemptResult{outcome: outcomeFatal, err: err} }

type inboundFrame struct {
	data []byte
	err  error
}

// attempt drives one Transport from Hello to a terminal outcome. It always
// closes the Transport before returning, on every path.
func (s *Session) attempt(ctx context.Context, transport domain.Transport, keys *crypto.KeyPair) attemptResult {
	defer transport.Close()

	s.publish(domain.SessionPhase{Kind: domain.PhaseLoading})

	// Reads happen on their own goroutine so the loop below can wait on the
	// heartbeat timer and inbound frames at the same time. The done channel
	// unblocks the reader if the attempt ends first; closing the transport
	// then fails its pending read and it exits.
	frames := make(chan inboundFrame)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			data, err := transport.ReadMessage()
			select {
			case frames <- inboundFrame{data: data, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()

	// Heartbeat state. beatC stays nil (never fires) until Hello announces
	// an interval; ackPending enforces one outstanding beat at most.
	var (
		heartbeats *time.Ticker
		beatC      <-chan time.Time
		deadlineC  <-chan time.Time
		ackPending bool
	)
	defer func() {
		if heartbeats != nil {
			heartbeats.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return attemptResult{outcome: outcomeCancelled, err: ctx.Err()}

		case <-deadlineC:
			return reconnect(ErrSessionExpired)

		case <-beatC:
			if ackPending {
				return reconnect(ErrLiveness)
			}
			if err := transport.WriteJSON(HeartbeatMessage()); err != nil {
				return reconnect(violation("send heartbeat", err))
			}
			ackPending = true

		case frame := <-frames:
			if frame.err != nil {
				return reconnect(violation("connection closed while awaiting opcode", frame.err))
			}
			msg, err := DecodeServerMessage(frame.data)
			if err != nil {
				return reconnect(violation("decode frame", err))
			}

			switch m := msg.(type) {
			case Hello:
				if interval := time.Duration(m.HeartbeatInterval) * time.Millisecond; interval > 0 {
					heartbeats = time.NewTicker(interval)
					beatC = heartbeats.C
				}
				if timeout := time.Duration(m.TimeoutMS) * time.Millisecond; timeout > 0 {
					deadlineC = time.After(timeout)
				}
				if err := transport.WriteJSON(InitMessage(crypto.B64(keys.PublicDER))); err != nil {
					return reconnect(violation("send init", err))
				}

			case NonceChallenge:
				ct, err := crypto.B64Decode(m.EncryptedNonce)
				if err != nil {
					return reconnect(violation("decode encrypted nonce", err))
				}
				nonce, err := keys.Decrypt(ct)
				if err != nil {
					return reconnect(violation("decrypt nonce", err))
				}
				proof := NonceProofMessage(crypto.B64URL(nonce))
				memzero.Zero(nonce)
				if err := transport.WriteJSON(proof); err != nil {
					return reconnect(violation("send nonce proof", err))
				}

			case HeartbeatAck:
				ackPending = false

			case PendingRemoteInit:
				if m.Fingerprint != keys.Fingerprint() {
					return reconnect(violation("fingerprint mismatch", nil))
				}
				s.publish(domain.SessionPhase{
					Kind:      domain.PhaseQRCode,
					QRCodeURL: fmt.Sprintf(s.cfg.QRCodeURL, m.Fingerprint),
				})

			case PendingTicket:
				ct, err := crypto.B64Decode(m.EncryptedUserPayload)
				if err != nil {
					return reconnect(violation("decode user payload", err))
				}
				payload, err := keys.Decrypt(ct)
				if err != nil {
					return reconnect(violation("decrypt user payload", err))
				}
				account, err := ParseAccountIdentity(payload)
				memzero.Zero(payload)
				if err != nil {
					return reconnect(violation("parse user payload", err))
				}
				s.publish(domain.SessionPhase{Kind: domain.PhaseAccepted, Account: account})

			case PendingLogin:
				// The ticket is single-use and consumed server-side, so a
				// failure past this point is fatal, never retried.
				token, err := s.exchange(ctx, keys, m.Ticket)
				if err != nil {
					if ctx.Err() != nil {
						return attemptResult{outcome: outcomeCancelled, err: ctx.Err()}
					}
					return fatal(err)
				}
				s.publish(domain.SessionPhase{Kind: domain.PhaseCompleted})
				return attemptResult{outcome: outcomeCompleted, token: token}

			case Cancel:
				s.publish(domain.SessionPhase{Kind: domain.PhaseCancelled})
				return attemptResult{outcome: outcomeCancelled, err: ErrCancelled}
			}
		}
	}
}

// exchange trades the ticket for the encrypted token blob and opens it with
// the attempt's private key, the same pair the companion device encrypted
// against during the handshake.
func (s *Session) exchange(ctx context.Context, keys *crypto.KeyPair, ticket string) (string, error) {
	blob, err := s.cfg.Exchanger.ExchangeTicket(ctx, ticket)
	if err != nil {
		return "", fmt.Errorf("ticket exchange: %w", err)
	}
	raw, err := keys.Decrypt(blob)
	if err != nil {
		return "", fmt.Errorf("decrypt token: %w", err)
	}
	token := string(raw)
	memzero.Zero(raw)
	return token, nil
}

func (s *Session) publish(p domain.SessionPhase) { s.cfg.Phases.Publish(p) }

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
