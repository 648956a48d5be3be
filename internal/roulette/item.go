// Package roulette draws named items without replacement, with probability
// proportional to their weight.
package roulette

// Item is one named entry competing for selection. Name is the identity key
// used for exclusion, so duplicate names are drawn at most once between them.
type Item struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// DefaultItem is what a fresh row holds before the user edits it.
func DefaultItem() Item { return Item{Name: "", Weight: 1} }

// CloneItems returns an independent copy of items.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	return append([]Item(nil), items...)
}
