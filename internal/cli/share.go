package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/roulette/internal/app"
)

func addShareCmd(root *cobra.Command, g *globals) {
	var src stateSource
	var base string
	cmd := &cobra.Command{
		Use:   "share " + stateFlags + " [--base url]",
		Short: "Print a link that restores the item list and draw count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := src.build(cmd, g)
			if err != nil {
				return err
			}
			if g.remote != "" {
				client, closeConn, err := g.dial()
				if err != nil {
					return err
				}
				defer closeConn()
				link, err := client.Share(cmd.Context(), st)
				if err != nil {
					return fmt.Errorf("remote share: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), link)
				return nil
			}

			if base == "" {
				base = g.publicURL
			}
			res := g.service().ShareWithBase(app.SurfaceCLI, base, st)
			fmt.Fprintln(cmd.OutOrStdout(), res.ShareURL)
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&base, "base", "", "Page URL for the link (defaults to --public-url; ignored with --remote)")
	root.AddCommand(cmd)
}
