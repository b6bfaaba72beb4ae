package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all available SSH keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "🗝️  OctoKey found these SSH keys:")

			if !long {
				names, err := appCtx.Keys.List()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintf(out, "  - %s\n", name)
				}
				return nil
			}

			keys, err := appCtx.Keys.ListDetailed()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, k := range keys {
				if k.Invalid {
					fmt.Fprintf(tw, "  - %s\t(invalid public key)\t\t\n", k.Name)
					continue
				}
				fmt.Fprintf(tw, "  - %s\t%s\t%s\t%s\n", k.Name, k.Type, k.Fingerprint, k.Comment)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "show key type, fingerprint and comment")
	return cmd
}
