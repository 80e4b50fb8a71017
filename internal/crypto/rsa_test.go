package crypto_test

import (
	"bytes"
	"errors"
	"testing"

	"cordlink/internal/crypto"
)

func makeKeyPair(t *testing.T) *crypto.KeyPair {
	t.Helper()
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	return kp
}

func TestFingerprint_Deterministic(t *testing.T) {
	kp := makeKeyPair(t)

	if got, want := kp.Fingerprint(), crypto.Fingerprint(kp.PublicDER); got != want {
		t.Fatalf("fingerprint mismatch: %q vs %q", got, want)
	}
	if kp.Fingerprint() != kp.Fingerprint() {
		t.Fatal("fingerprint not deterministic")
	}
}

func TestFingerprint_DistinctKeys(t *testing.T) {
	a := makeKeyPair(t)
	b := makeKeyPair(t)

	if a.Fingerprint() == b.Fingerprint() {
		t.Fatal("independent keys produced the same fingerprint")
	}
}

func TestDecrypt_RoundTrip(t *testing.T) {
	kp := makeKeyPair(t)
	plaintext := []byte("123:4567:hash:name")

	ct, err := kp.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	pt, err := kp.Decrypt(ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(pt, plaintext) {
		t.Fatalf("round trip mismatch: got %q", pt)
	}
}

func TestDecrypt_BadCiphertext(t *testing.T) {
	kp := makeKeyPair(t)

	// Wrong length for the key size.
	if _, err := kp.Decrypt([]byte("short")); !errors.Is(err, crypto.ErrDecrypt) {
		t.Fatalf("want ErrDecrypt for short input, got %v", err)
	}

	// Right length, garbage contents.
	garbage := bytes.Repeat([]byte{0xA5}, 256)
	if _, err := kp.Decrypt(garbage); !errors.Is(err, crypto.ErrDecrypt) {
		t.Fatalf("want ErrDecrypt for garbage input, got %v", err)
	}

	// Valid ciphertext for a different key.
	other := makeKeyPair(t)
	ct, err := other.Encrypt([]byte("nonce"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := kp.Decrypt(ct); !errors.Is(err, crypto.ErrDecrypt) {
		t.Fatalf("want ErrDecrypt for foreign ciphertext, got %v", err)
	}
}
