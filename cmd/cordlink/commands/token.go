package commands

import (
	"errors"

	"github.com/spf13/cobra"
)

// tokenCmd prints the stored token for scripting against the platform API.
func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, ok, err := appCtx.Tokens.LoadToken(passphrase)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("no token stored; run `cordlink login` first")
			}
			cmd.Println(token)
			return nil
		},
	}
}
