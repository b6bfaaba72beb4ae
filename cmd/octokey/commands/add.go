package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"octokey/internal/domain"
)

func addCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "add <key_name>",
		Short: "Add a new SSH key for GitHub",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := domain.KeyName(args[0])
			if err := appCtx.Keys.PrepareAdd(name); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "🐙 OctoKey is generating a new SSH key...")

			// -e "" asks for an empty comment; only an absent flag gets the default.
			var comment *string
			if cmd.Flags().Changed("email") {
				comment = &email
			}
			kp, err := appCtx.Keys.Add(cmd.Context(), name, comment)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "🎉 New SSH key generated! Add the following public key to your GitHub account:")
			fmt.Fprintln(out, strings.TrimRight(kp.PublicKey, "\n"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "email associated with the GitHub account (key comment)")
	return cmd
}
