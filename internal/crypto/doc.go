// Package crypto exposes the minimal primitives used by cordlink.
//
// Contents
//
//   - Ephemeral RSA-2048 key generation with a DER-encoded SPKI public key
//     (GenerateKeyPair)
//   - RSA-OAEP (SHA-256) decryption of server-supplied ciphertexts
//     (KeyPair.Decrypt)
//   - Public-key fingerprints for the QR pairing check (Fingerprint)
//   - Base64 helpers for the gateway's two alphabets (B64, B64URL)
//
// # Notes
//
// A KeyPair lives for exactly one gateway connection attempt and is never
// reused across reconnects. Callers should treat decrypt failures as
// protocol violations, not crashes; Decrypt always wraps them in ErrDecrypt.
package crypto
