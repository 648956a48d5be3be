package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/xtding233/roulette/internal/app"
	"github.com/xtding233/roulette/internal/sharecode"
)

func addSimulateCmd(root *cobra.Command, g *globals) {
	var src stateSource
	var trials int
	cmd := &cobra.Command{
		Use:   "simulate " + stateFlags + " [--trials n] [--seed n]",
		Short: "Spin many times and compare observed frequencies with the weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := src.build(cmd, g)
			if err != nil {
				return err
			}
			rep, err := g.service().Simulate(sharecode.Encode(st.Items, st.DrawCount), trials)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "trials: %d  draws: %d\n", rep.Trials, rep.Draws)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tWEIGHT\tEXPECTED\tFIRST\tINCLUDED")
			for _, f := range rep.Items {
				fmt.Fprintf(w, "%s\t%g\t%.4f\t%.4f\t%.4f\n",
					displayName(f.Name), f.Weight, f.Expected, f.FirstPick, f.Inclusion)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "max deviation: %.4f  chi-square: %.3f\n", rep.MaxDeviation, rep.ChiSquare)
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().IntVar(&trials, "trials", app.DefaultTrials, "Number of spins to run")
	cmd.Flags().Uint64Var(&g.seed, "seed", 0, "Seed for a reproducible run (0 uses a secure random source)")
	root.AddCommand(cmd)
}

