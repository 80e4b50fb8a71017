package commands

import (
	"github.com/spf13/cobra"
)

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Tokens.DeleteToken(); err != nil {
				return err
			}
			cmd.Println("Token removed.")
			return nil
		},
	}
}
