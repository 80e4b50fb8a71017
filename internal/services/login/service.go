package login

import (
	"context"
	"fmt"
	"log"

	"cordlink/internal/domain"
	"cordlink/internal/gateway"
	"cordlink/internal/util/latest"
)

// Service runs the companion-device login flow end to end.
//
// It owns the phase cell consumed by the UI layer, drives a gateway.Session
// through however many connection attempts it needs, and persists the token
// once the flow completes. One Service instance serves one login flow at a
// time.
type Service struct {
	dialer    domain.Dialer
	exchanger domain.TicketExchanger
	tokens    domain.TokenStore
	phases    *latest.Cell[domain.SessionPhase]

	qrCodeURL   string
	maxAttempts int
	logger      *log.Logger
}

// New constructs a login service. tokens may be nil when the caller handles
// the token itself; logger may be nil.
func New(
	dialer domain.Dialer,
	exchanger domain.TicketExchanger,
	tokens domain.TokenStore,
	qrCodeURL string,
	maxAttempts int,
	logger *log.Logger,
) *Service {
	return &Service{
		dialer:      dialer,
		exchanger:   exchanger,
		tokens:      tokens,
		phases:      latest.New[domain.SessionPhase](),
		qrCodeURL:   qrCodeURL,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Phases is the single-writer observable of the flow's visible state.
// Readers see the latest value only; intermediate phases may be missed.
func (s *Service) Phases() *latest.Cell[domain.SessionPhase] { return s.phases }

// Login runs the handshake until a token is obtained, the flow is cancelled,
// or a terminal failure occurs. The returned token has already been
// persisted when a token store is configured.
func (s *Service) Login(ctx context.Context, passphrase string) (string, error) {
	sess := gateway.NewSession(gateway.Config{
		Dialer:      s.dialer,
		Exchanger:   s.exchanger,
		QRCodeURL:   s.qrCodeURL,
		MaxAttempts: s.maxAttempts,
		Phases:      s.phases,
		Logger:      s.logger,
	})

	token, err := sess.Run(ctx)
	if err != nil {
		return "", err
	}

	if s.tokens != nil {
		if err := s.tokens.SaveToken(passphrase, token); err != nil {
			return "", fmt.Errorf("persist token: %w", err)
		}
	}
	return token, nil
}
