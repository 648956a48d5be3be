package roulette

import (
	"errors"
	"math"
)

// MaxTrials bounds a single simulation run.
const MaxTrials = 1_000_000

var (
	ErrNoItems       = errors.New("no items to simulate")
	ErrInvalidTrials = errors.New("trial count out of range")
)

// Frequency compares what a name should get on the first draw with what it got.
type Frequency struct {
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`     // summed over items sharing the name
	Expected  float64 `json:"expected"`   // weight / total
	FirstPick float64 `json:"first_pick"` // observed share of spins where it came first
	Inclusion float64 `json:"inclusion"`  // observed share of spins where it appeared at all
}

// Report summarizes one simulation run.
type Report struct {
	Trials       int         `json:"trials"`
	Draws        int         `json:"draws"`
	Items        []Frequency `json:"items"`
	MaxDeviation float64     `json:"max_deviation"` // max |FirstPick - Expected|
	ChiSquare    float64     `json:"chi_square"`    // over first-pick counts
}

// RunMonteCarlo spins trials times with the given draw count and tallies the
// outcome per name. Weights are clamped the same way a session clamps them.
func RunMonteCarlo(items []Item, draws, trials int, rng RandomSource) (Report, error) {
	if len(items) == 0 {
		return Report{}, ErrNoItems
	}
	if trials <= 0 || trials > MaxTrials {
		return Report{}, ErrInvalidTrials
	}
	rng = orDefault(rng)
	items = ClampItems(items)
	draws = ClampDrawCount(draws)
	if draws > len(items) {
		draws = len(items)
	}

	// group by name, keeping first-seen order
	index := make(map[string]int, len(items))
	var freqs []Frequency
	var total float64
	for _, it := range items {
		i, ok := index[it.Name]
		if !ok {
			i = len(freqs)
			index[it.Name] = i
			freqs = append(freqs, Frequency{Name: it.Name})
		}
		freqs[i].Weight += it.Weight
		total += it.Weight
	}

	first := make([]int, len(freqs))
	seen := make([]int, len(freqs))
	for t := 0; t < trials; t++ {
		got := DrawN(items, draws, rng)
		if len(got) == 0 {
			continue
		}
		first[index[got[0]]]++
		for _, name := range got {
			seen[index[name]]++
		}
	}

	rep := Report{Trials: trials, Draws: draws, Items: freqs}
	n := float64(trials)
	for i := range freqs {
		f := &rep.Items[i]
		f.Expected = f.Weight / total
		f.FirstPick = float64(first[i]) / n
		f.Inclusion = float64(seen[i]) / n
		if d := math.Abs(f.FirstPick - f.Expected); d > rep.MaxDeviation {
			rep.MaxDeviation = d
		}
		if exp := f.Expected * n; exp > 0 {
			diff := float64(first[i]) - exp
			rep.ChiSquare += diff * diff / exp
		}
	}
	return rep, nil
}
