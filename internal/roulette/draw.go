package roulette

import "math"

// DrawOne picks one name from the items not in excluded, weighted by Weight.
// ok is false when nothing is left to draw: every name is excluded, or the
// remaining weights do not sum to a positive finite total.
//
// Callers clamp weights to >= 1 first; non-positive weights are not checked.
func DrawOne(items []Item, excluded map[string]bool, rng RandomSource) (name string, ok bool) {
	pool := make([]Item, 0, len(items))
	var total float64
	for _, it := range items {
		if excluded[it.Name] {
			continue
		}
		pool = append(pool, it)
		total += it.Weight
	}
	if len(pool) == 0 || !(total > 0) || math.IsInf(total, 0) {
		return "", false
	}

	r := orDefault(rng).Float64() * total
	for _, it := range pool {
		r -= it.Weight
		if r <= 0 {
			return it.Name, true
		}
	}
	// rounding left r slightly above zero
	return pool[len(pool)-1].Name, true
}

// DrawN draws up to n distinct names in order. n is capped at len(items) and
// the sequence stops early once DrawOne has nothing left.
func DrawN(items []Item, n int, rng RandomSource) []string {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return []string{}
	}
	rng = orDefault(rng)

	out := make([]string, 0, n)
	excluded := make(map[string]bool, n)
	for len(out) < n {
		name, ok := DrawOne(items, excluded, rng)
		if !ok {
			break
		}
		out = append(out, name)
		excluded[name] = true
	}
	return out
}
