package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
)

const rsaBits = 2048

// ErrDecrypt is wrapped by every OAEP decryption failure.
var ErrDecrypt = errors.New("oaep decryption failed")

// KeyPair is an ephemeral RSA key pair scoped to one connection attempt.
// The private key never leaves this package.
type KeyPair struct {
	priv *rsa.PrivateKey

	// PublicDER is the DER-encoded SPKI form of the public key, the exact
	// bytes the gateway fingerprints.
	PublicDER []byte
}

// GenerateKeyPair returns a fresh RSA-2048 pair. A failure here is fatal to
// the attempt; it is reported, never retried silently.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, rsaBits)
	if err != nil {
		return nil, fmt.Errorf("generate rsa key: %w", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("encode public key: %w", err)
	}
	return &KeyPair{priv: priv, PublicDER: der}, nil
}

// Decrypt opens an RSA-OAEP (SHA-256) ciphertext with the private key.
func (k *KeyPair) Decrypt(ciphertext []byte) ([]byte, error) {
	pt, err := rsa.DecryptOAEP(sha256.New(), nil, k.priv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return pt, nil
}

// Encrypt seals plaintext against the public key with RSA-OAEP (SHA-256).
// The gateway side of the handshake does this; we keep it for tests and
// local round-trip checks.
func (k *KeyPair) Encrypt(plaintext []byte) ([]byte, error) {
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, &k.priv.PublicKey, plaintext, nil)
}

// Fingerprint digests a DER-encoded public key the way the gateway does:
// base64url without padding over a single SHA-256 pass.
func Fingerprint(publicDER []byte) string {
	sum := sha256.Sum256(publicDER)
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// Fingerprint returns the fingerprint of this pair's public key.
func (k *KeyPair) Fingerprint() string {
	return Fingerprint(k.PublicDER)
}
