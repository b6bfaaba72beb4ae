package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd relays the remote's answer verbatim; it is not interpreted.
func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check current GitHub user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "🔍 OctoKey is checking your GitHub user...")

			hs, err := appCtx.Keys.Check(cmd.Context())
			if err != nil {
				return err
			}
			appCtx.Log.Debug("remote answered", zap.Int("exit_code", hs.ExitCode))

			if _, err := cmd.OutOrStdout().Write(hs.Stdout); err != nil {
				return err
			}
			_, err = cmd.ErrOrStderr().Write(hs.Stderr)
			return err
		},
	}
}
