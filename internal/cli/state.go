package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xtding233/roulette/internal/roulette"
	"github.com/xtding233/roulette/internal/session"
	"github.com/xtding233/roulette/internal/sharecode"
)

const stateFlags = "[--preset name] [--from url|query] [--item name[:weight]]... [--draws n]"

// stateSource collects the flags that describe an item list.
type stateSource struct {
	items  []string
	draws  int
	from   string
	preset string
}

func (s *stateSource) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&s.items, "item", "i", nil, "Item as name or name:weight (repeatable)")
	cmd.Flags().IntVarP(&s.draws, "draws", "n", 1, "How many distinct items to draw")
	cmd.Flags().StringVar(&s.from, "from", "", "Share link or query string to start from")
	cmd.Flags().StringVar(&s.preset, "preset", "", "Preset to start from")
}

// build layers the sources: preset, then --from, then --item, then --draws.
// Later layers replace earlier ones only when given.
func (s *stateSource) build(cmd *cobra.Command, g *globals) (sharecode.State, error) {
	sess := session.New()

	if s.preset != "" {
		view, err := g.service().Preset(s.preset)
		if err != nil {
			return sharecode.State{}, err
		}
		sess = session.FromState(view.Preset.State())
	}
	if s.from != "" {
		sess.Load(sharecode.RawQuery(s.from))
	}
	if len(s.items) > 0 {
		sess.ReplaceItems(parseItems(s.items))
	}
	if cmd.Flags().Changed("draws") {
		sess.SetDrawCount(s.draws)
	}
	g.logger.Debug("state", "items", len(sess.Items()), "draws", sess.DrawCount())
	return sess.State(), nil
}

// parseItems reads name[:weight]. The last colon splits, so names may
// contain colons; weights are parsed fail-soft.
func parseItems(raw []string) []roulette.Item {
	items := make([]roulette.Item, len(raw))
	for i, r := range raw {
		name, weight := r, "1"
		if j := strings.LastIndex(r, ":"); j >= 0 {
			name, weight = r[:j], r[j+1:]
		}
		items[i] = roulette.Item{Name: name, Weight: roulette.ParseWeight(weight)}
	}
	return items
}

func printItems(cmd *cobra.Command, st sharecode.State) {
	out := cmd.OutOrStdout()
	for i, it := range st.Items {
		fmt.Fprintf(out, "%d. %s (weight %s)\n", i+1, displayName(it.Name), sharecode.FormatWeight(it.Weight))
	}
	fmt.Fprintf(out, "draws: %d\n", st.DrawCount)
}

func displayName(name string) string {
	if name == "" {
		return "(blank)"
	}
	return name
}
