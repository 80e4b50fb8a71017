package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cordlink/internal/domain"
)

// loginCmd runs the companion-device handshake: it prints the QR URL for the
// phone to scan, reports progress, and stores the token on success.
func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate by scanning a QR code with the mobile app",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc := appCtx.Login
			phases := svc.Phases()

			// Report phase changes while the handshake runs. Latest-value
			// semantics: a burst of transitions may collapse into one print.
			go func() {
				var last domain.PhaseKind = -1
				for {
					select {
					case <-ctx.Done():
						return
					case <-phases.Changes():
					}
					phase, ok := phases.Load()
					if !ok || phase.Kind == last {
						continue
					}
					last = phase.Kind

					switch phase.Kind {
					case domain.PhaseLoading:
						cmd.Println("Connecting to the remote auth gateway...")
					case domain.PhaseQRCode:
						cmd.Printf("Scan this with the mobile app:\n\n  %s\n\n", phase.QRCodeURL)
					case domain.PhaseAccepted:
						cmd.Printf("Approved on this device: %s (user id %s)\n", phase.Account.Tag(), phase.Account.UserID)
					case domain.PhaseCancelled:
						cmd.Println("Login cancelled from the mobile app.")
					}
				}
			}()

			// The service persists the token; it is never printed here.
			if _, err := svc.Login(ctx, passphrase); err != nil {
				return fmt.Errorf("login: %w", err)
			}

			cmd.Println("Logged in. Token saved.")
			return nil
		},
	}
}
