package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cordlink/internal/crypto"
	"cordlink/internal/domain"
)

// DefaultBaseURL is the production REST API base.
const DefaultBaseURL = "https://discord.com/api/v9"

// ticketExchangePath trades a remote-auth ticket for an encrypted token.
const ticketExchangePath = "/users/@me/remote-auth/login"

// Client issues the unauthenticated ticket-exchange call.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a Client against base, using httpClient when non-nil.
func NewClient(base string, httpClient *http.Client) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Base: base, HTTP: httpClient}
}

type ticketExchangeRequest struct {
	Ticket string `json:"ticket"`
}

type ticketExchangeResponse struct {
	EncryptedToken string `json:"encrypted_token"`
}

// ExchangeTicket posts the one-time ticket and returns the still-encrypted
// token blob. Called at most once per ticket; any failure here is terminal
// for the login flow since the ticket is already consumed server-side.
func (c *Client) ExchangeTicket(ctx context.Context, ticket string) ([]byte, error) {
	body, err := json.Marshal(ticketExchangeRequest{Ticket: ticket})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+ticketExchangePath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, decodeError(resp)
	}

	var out ticketExchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode ticket exchange response: %w", err)
	}
	blob, err := crypto.B64Decode(out.EncryptedToken)
	if err != nil {
		return nil, fmt.Errorf("decode encrypted token: %w", err)
	}
	return blob, nil
}

// Compile-time assertion that Client implements domain.TicketExchanger.
var _ domain.TicketExchanger = (*Client)(nil)
