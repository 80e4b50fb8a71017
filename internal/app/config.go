package app

import (
	"log"
	"net/http"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home        string       // config directory, e.g. $HOME/.cordlink
	GatewayURL  string       // remote auth gateway, defaults to the production wss endpoint
	Origin      string       // Origin header for the gateway handshake
	APIBase     string       // REST base URL for the ticket exchange
	QRCodeURL   string       // template with one %s for the fingerprint
	MaxAttempts int          // connection attempt budget; zero means unlimited
	HTTP        *http.Client // optional; defaults to http.DefaultClient
	Logger      *log.Logger  // optional; reconnect diagnostics
}
