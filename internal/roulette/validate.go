package roulette

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ClampWeight enforces the minimum weight of 1. NaN and infinities become 1.
func ClampWeight(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 1 {
		return 1
	}
	return w
}

// ClampDrawCount enforces the minimum draw count of 1.
func ClampDrawCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// ClampItems returns a copy of items with every weight clamped.
func ClampItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = Item{Name: it.Name, Weight: ClampWeight(it.Weight)}
	}
	return out
}

// ParseWeight reads a decimal weight. Blank, non-numeric and non-finite input
// yields 1. The result is not clamped.
func ParseWeight(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return 1
	}
	return w
}

// ParseDrawCount reads the leading integer of s: "3abc" is 3, "4.9" is 4,
// " +2" is 2. Input without leading digits yields 1. Out-of-range values
// saturate. The result is not clamped.
func ParseDrawCount(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			if s[0] == '-' {
				return math.MinInt
			}
			return math.MaxInt
		}
		return 1
	}
	return n
}
