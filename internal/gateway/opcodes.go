package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"cordlink/internal/domain"
)

// Opcode discriminator values, client and server direction.
const (
	OpInit       = "init"
	OpHeartbeat  = "heartbeat"
	OpNonceProof = "nonce_proof"

	OpHello             = "hello"
	OpHeartbeatAck      = "heartbeat_ack"
	OpPendingRemoteInit = "pending_remote_init"
	OpPendingTicket     = "pending_ticket"
	OpPendingLogin      = "pending_login"
	OpCancel            = "cancel"
)

// ClientMessage is any client→server opcode. Fields not belonging to the
// opcode stay empty and are omitted on the wire.
type ClientMessage struct {
	Op               string `json:"op"`
	EncodedPublicKey string `json:"encoded_public_key,omitempty"`
	Nonce            string `json:"nonce,omitempty"`
}

// InitMessage starts a new remote auth session with the standard-base64
// SPKI encoding of our public key.
func InitMessage(encodedPublicKey string) ClientMessage {
	return ClientMessage{Op: OpInit, EncodedPublicKey: encodedPublicKey}
}

// HeartbeatMessage keeps the connection alive.
func HeartbeatMessage() ClientMessage {
	return ClientMessage{Op: OpHeartbeat}
}

// NonceProofMessage carries the url-safe-base64 decrypted nonce back to the
// gateway to prove possession of the private key.
func NonceProofMessage(nonce string) ClientMessage {
	return ClientMessage{Op: OpNonceProof, Nonce: nonce}
}

// ServerMessage is any server→client opcode. DecodeServerMessage returns one
// of the concrete types below.
type ServerMessage interface {
	op() string
}

// Hello announces the heartbeat interval and the session lifespan, both in
// milliseconds. It is the first frame after connecting.
type Hello struct {
	HeartbeatInterval int64 `json:"heartbeat_interval"`
	TimeoutMS         int64 `json:"timeout_ms"`
}

// NonceChallenge carries a nonce encrypted against our public key.
type NonceChallenge struct {
	EncryptedNonce string `json:"encrypted_nonce"`
}

// HeartbeatAck acknowledges a client heartbeat.
type HeartbeatAck struct{}

// PendingRemoteInit confirms the handshake; Fingerprint is the gateway's
// url-safe-base64 SHA-256 of our public key, which we verify locally.
type PendingRemoteInit struct {
	Fingerprint string `json:"fingerprint"`
}

// PendingTicket arrives once the companion device scans the QR code; the
// payload is the colon-delimited identity, encrypted against our public key.
type PendingTicket struct {
	EncryptedUserPayload string `json:"encrypted_user_payload"`
}

// PendingLogin carries the one-time ticket to exchange for a token.
type PendingLogin struct {
	Ticket string `json:"ticket"`
}

// Cancel means the companion device aborted the login.
type Cancel struct{}

func (Hello) op() string             { return OpHello }
func (NonceChallenge) op() string    { return OpNonceProof }
func (HeartbeatAck) op() string      { return OpHeartbeatAck }
func (PendingRemoteInit) op() string { return OpPendingRemoteInit }
func (PendingTicket) op() string     { return OpPendingTicket }
func (PendingLogin) op() string      { return OpPendingLogin }
func (Cancel) op() string            { return OpCancel }

// DecodeServerMessage decodes one inbound frame by its op discriminator.
// Unknown ops and malformed payloads are typed failures, never panics.
func DecodeServerMessage(data []byte) (ServerMessage, error) {
	var head struct {
		Op string `json:"op"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode opcode frame: %w", err)
	}

	switch head.Op {
	case OpHello:
		var m Hello
		return m, json.Unmarshal(data, &m)
	case OpNonceProof:
		var m NonceChallenge
		return m, json.Unmarshal(data, &m)
	case OpHeartbeatAck:
		return HeartbeatAck{}, nil
	case OpPendingRemoteInit:
		var m PendingRemoteInit
		return m, json.Unmarshal(data, &m)
	case OpPendingTicket:
		var m PendingTicket
		return m, json.Unmarshal(data, &m)
	case OpPendingLogin:
		var m PendingLogin
		return m, json.Unmarshal(data, &m)
	case OpCancel:
		return Cancel{}, nil
	}
	return nil, fmt.Errorf("unknown server opcode %q", head.Op)
}

// ParseAccountIdentity splits a decrypted user payload into its four
// colon-delimited fields. The display name may itself contain colons, so
// only the first three separators are significant.
func ParseAccountIdentity(payload []byte) (domain.AccountIdentity, error) {
	parts := strings.SplitN(string(payload), ":", 4)
	if len(parts) != 4 {
		return domain.AccountIdentity{}, fmt.Errorf("user payload has %d fields, want 4", len(parts))
	}
	return domain.AccountIdentity{
		UserID:        parts[0],
		Discriminator: parts[1],
		AvatarHash:    parts[2],
		DisplayName:   parts[3],
	}, nil
}
