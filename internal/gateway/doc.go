// Package gateway implements the remote auth gateway protocol: the
// websocket handshake that lets an already-authenticated companion device
// approve a new login by scanning a QR code.
//
// A Session owns one Transport and one ephemeral RSA keypair per connection
// attempt. The inner loop waits simultaneously on the heartbeat timer and on
// inbound opcodes, verifies the gateway's fingerprint of our public key,
// proves possession of the private key by returning a decrypted nonce, and
// finishes by exchanging a one-time ticket for an encrypted session token.
// Recoverable failures restart the outer loop with fresh key material.
package gateway
