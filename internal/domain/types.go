package domain

import "fmt"

// PhaseKind enumerates the externally visible stages of a login attempt.
type PhaseKind int

const (
	// PhaseLoading means the handshake has not produced a fingerprint yet.
	PhaseLoading PhaseKind = iota
	// PhaseQRCode means the fingerprint was verified and a scannable URL is ready.
	PhaseQRCode
	// PhaseAccepted means the companion device approved and identified itself.
	PhaseAccepted
	// PhaseCancelled means the companion device aborted the attempt.
	PhaseCancelled
	// PhaseCompleted means a token was obtained and the flow is over.
	PhaseCompleted
)

// String returns a short name for the phase kind.
func (k PhaseKind) String() string {
	switch k {
	case PhaseLoading:
		return "loading"
	case PhaseQRCode:
		return "qr-code"
	case PhaseAccepted:
		return "accepted"
	case PhaseCancelled:
		return "cancelled"
	case PhaseCompleted:
		return "completed"
	}
	return fmt.Sprintf("phase(%d)", int(k))
}

// SessionPhase is the latest observable state of a login session.
//
// QRCodeURL is set only when Kind is PhaseQRCode; Account only when Kind is
// PhaseAccepted. Consumers read whichever field matches the kind.
type SessionPhase struct {
	Kind      PhaseKind
	QRCodeURL string
	Account   AccountIdentity
}

// AccountIdentity is the decrypted identity payload sent once the companion
// device scans the QR code.
type AccountIdentity struct {
	UserID        string
	Discriminator string
	AvatarHash    string // "0" represents a null avatar
	DisplayName   string
}

// Tag renders the identity in the familiar name#discriminator form.
func (a AccountIdentity) Tag() string {
	return a.DisplayName + "#" + a.Discriminator
}
