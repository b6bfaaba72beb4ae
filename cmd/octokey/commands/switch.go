package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"octokey/internal/domain"
)

// switch <key_name>: flush ssh-agent, then load only the named key.
func switchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <key_name>",
		Short: "Switch to a different SSH key for GitHub",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := domain.KeyName(args[0])
			if err := appCtx.Keys.PrepareSwitch(name); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "🔄 OctoKey is switching SSH keys...")

			if err := appCtx.Keys.Switch(cmd.Context(), name); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Switched to key: %s\n", name)
			return nil
		},
	}
}
