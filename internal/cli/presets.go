package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addPresetsCmd(root *cobra.Command, g *globals) {
	cmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "List presets, or show one preset and its share link",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := g.service()
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				names, err := svc.Presets()
				if err != nil {
					return err
				}
				if len(names) == 0 {
					fmt.Fprintf(out, "no presets in %s\n", g.presetDir)
				}
				for _, n := range names {
					fmt.Fprintln(out, n)
				}
				return nil
			}

			view, err := svc.Preset(args[0])
			if err != nil {
				return err
			}
			if view.Preset.Title != "" {
				fmt.Fprintln(out, view.Preset.Title)
			}
			printItems(cmd, view.Preset.State())
			fmt.Fprintln(out, view.ShareURL)
			return nil
		},
	}
	root.AddCommand(cmd)
}
