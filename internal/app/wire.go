package app

import (
	"net/http"

	"cordlink/internal/api"
	"cordlink/internal/domain"
	"cordlink/internal/gateway"
	loginsvc "cordlink/internal/services/login"
	"cordlink/internal/store"
)

// Wire bundles all stores, clients, and services for the CLI.
type Wire struct {
	Tokens domain.TokenStore
	Login  *loginsvc.Service
	HTTP   *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if cfg.GatewayURL == "" {
		cfg.GatewayURL = gateway.DefaultGatewayURL
	}
	if cfg.Origin == "" {
		cfg.Origin = gateway.DefaultOrigin
	}
	if cfg.QRCodeURL == "" {
		cfg.QRCodeURL = gateway.DefaultQRCodeURL
	}

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	tokens := store.NewFileStore(cfg.Home)
	exchanger := api.NewClient(cfg.APIBase, httpClient)
	dialer := &gateway.WSDialer{URL: cfg.GatewayURL, Origin: cfg.Origin}

	svc := loginsvc.New(dialer, exchanger, tokens, cfg.QRCodeURL, cfg.MaxAttempts, cfg.Logger)

	return &Wire{
		Tokens: tokens,
		Login:  svc,
		HTTP:   httpClient,
	}, nil
}
