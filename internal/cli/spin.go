package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xtding233/roulette/internal/app"
	"github.com/xtding233/roulette/internal/sharecode"
)

func addSpinCmd(root *cobra.Command, g *globals) {
	var src stateSource
	var showShare bool
	cmd := &cobra.Command{
		Use:   "spin " + stateFlags + " [--seed n]",
		Short: "Draw items in weighted order without replacement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := src.build(cmd, g)
			if err != nil {
				return err
			}

			var results []string
			shareURL := ""
			if g.remote != "" {
				client, closeConn, err := g.dial()
				if err != nil {
					return err
				}
				defer closeConn()
				results, _, err = client.Spin(cmd.Context(), sharecode.Encode(st.Items, st.DrawCount))
				if err != nil {
					return fmt.Errorf("remote spin: %w", err)
				}
				if showShare {
					if shareURL, err = client.Share(cmd.Context(), st); err != nil {
						return fmt.Errorf("remote share: %w", err)
					}
				}
			} else {
				res := g.service().SpinState(app.SurfaceCLI, st)
				results, shareURL = res.Results, res.ShareURL
			}

			out := cmd.OutOrStdout()
			for i, name := range results {
				fmt.Fprintf(out, "%d. %s\n", i+1, displayName(name))
			}
			if showShare && shareURL != "" {
				fmt.Fprintln(out, shareURL)
			}
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().Uint64Var(&g.seed, "seed", 0, "Seed for a reproducible draw (0 uses a secure random source)")
	cmd.Flags().BoolVar(&showShare, "share", false, "Also print the share link")
	root.AddCommand(cmd)
}
