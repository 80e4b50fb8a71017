package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrCancelled is returned when the companion device aborts the login.
	// It is a terminal outcome, not a retryable failure.
	ErrCancelled = errors.New("login cancelled by companion device")

	// ErrLiveness marks a heartbeat that was never acknowledged.
	ErrLiveness = errors.New("heartbeat not acknowledged before next interval")

	// ErrSessionExpired marks an attempt that outlived the gateway's
	// announced timeout without completing.
	ErrSessionExpired = errors.New("remote auth session expired")
)

// ViolationError is any server behaviour that breaks the protocol: a
// fingerprint mismatch, an undecryptable ciphertext, a malformed payload, or
// a connection closed while an opcode was still expected. Violations tear
// the current Transport down and restart the attempt with a fresh keypair;
// they never surface to the caller.
type ViolationError struct {
	Reason string
	Err    error
}

func (e *ViolationError) Error() string {
	if e.Err == nil {
		return "protocol violation: " + e.Reason
	}
	return fmt.Sprintf("protocol violation: %s: %v", e.Reason, e.Err)
}

func (e *ViolationError) Unwrap() error { return e.Err }

func violation(reason string, err error) *ViolationError {
	return &ViolationError{Reason: reason, Err: err}
}
