package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/roulette/internal/sharecode"
)

func addRestoreCmd(root *cobra.Command, g *globals) {
	cmd := &cobra.Command{
		Use:   "restore <url|query>",
		Short: "Show the item list and draw count stored in a share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var st sharecode.State
			if g.remote != "" {
				client, closeConn, err := g.dial()
				if err != nil {
					return err
				}
				defer closeConn()
				if st, err = client.Restore(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("remote restore: %w", err)
				}
			} else {
				st = g.service().Restore(args[0])
			}

			if st.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "no items in link")
				fmt.Fprintf(cmd.OutOrStdout(), "draws: %d\n", st.DrawCount)
				return nil
			}
			printItems(cmd, st)
			return nil
		},
	}
	root.AddCommand(cmd)
}
