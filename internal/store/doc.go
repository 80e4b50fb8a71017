// Package store persists the session token on disk, sealed with a
// passphrase-derived key (scrypt + ChaCha20-Poly1305).
package store
