package commands

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cordlink/internal/app"
)

var (
	home       string
	passphrase string
	gatewayURL string
	apiBase    string
	attempts   int
	verbose    bool

	appCtx *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "cordlink",
		Short: "Log in to your account by scanning a QR code with your phone",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".cordlink")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			var logger *log.Logger
			if verbose {
				logger = log.New(cmd.ErrOrStderr(), "cordlink: ", log.LstdFlags)
			}

			var err error
			appCtx, err = app.NewWire(app.Config{
				Home:        home,
				GatewayURL:  gatewayURL,
				APIBase:     apiBase,
				MaxAttempts: attempts,
				Logger:      logger,
			})
			return err
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.cordlink)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase to protect the stored token")
	root.PersistentFlags().StringVar(&gatewayURL, "gateway", "", "remote auth gateway URL override")
	root.PersistentFlags().StringVar(&apiBase, "api", "", "REST API base URL override")
	root.PersistentFlags().IntVar(&attempts, "attempts", 0, "max connection attempts (0 = unlimited)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log reconnect diagnostics")

	root.AddCommand(loginCmd(), logoutCmd(), tokenCmd())
	return root.Execute()
}
