// Package session holds the mutable state behind one roulette screen: the
// item list, the draw count, the last results and the last share link.
//
// A Session is the only writer of its state and is not safe for concurrent
// use. Hosts create one per interaction (a CLI run, an HTTP or gRPC request).
package session

import (
	"github.com/xtding233/roulette/internal/roulette"
	"github.com/xtding233/roulette/internal/sharecode"
)

type Session struct {
	items     []roulette.Item
	drawCount int
	results   []string
	shareText string
}

// New starts with one blank item of weight 1 and a draw count of 1.
func New() *Session {
	return &Session{
		items:     []roulette.Item{roulette.DefaultItem()},
		drawCount: 1,
	}
}

// FromState builds a session around a decoded or preset state, applying the
// same merge rules as Load.
func FromState(st sharecode.State) *Session {
	s := New()
	s.apply(st)
	return s
}

func (s *Session) Items() []roulette.Item { return roulette.CloneItems(s.items) }
func (s *Session) DrawCount() int         { return s.drawCount }
func (s *Session) ShareText() string      { return s.shareText }

// Results returns the last spin in draw order, empty before the first spin.
func (s *Session) Results() []string {
	out := make([]string, len(s.results))
	copy(out, s.results)
	return out
}

// State returns the shareable part of the session.
func (s *Session) State() sharecode.State {
	return sharecode.State{Items: s.Items(), DrawCount: s.drawCount}
}

func (s *Session) AddItem() {
	s.items = append(s.items, roulette.DefaultItem())
}

// RemoveItem deletes the item at index i. Out-of-range indexes are ignored.
func (s *Session) RemoveItem(i int) {
	if i < 0 || i >= len(s.items) {
		return
	}
	s.items = append(s.items[:i:i], s.items[i+1:]...)
}

func (s *Session) UpdateName(i int, name string) {
	if i < 0 || i >= len(s.items) {
		return
	}
	s.items[i].Name = name
}

// UpdateWeight stores w clamped to at least 1.
func (s *Session) UpdateWeight(i int, w float64) {
	if i < 0 || i >= len(s.items) {
		return
	}
	s.items[i].Weight = roulette.ClampWeight(w)
}

// UpdateWeightText parses raw form input, then clamps it.
func (s *Session) UpdateWeightText(i int, raw string) {
	s.UpdateWeight(i, roulette.ParseWeight(raw))
}

func (s *Session) SetDrawCount(n int) {
	s.drawCount = roulette.ClampDrawCount(n)
}

func (s *Session) SetDrawCountText(raw string) {
	s.SetDrawCount(roulette.ParseDrawCount(raw))
}

// ReplaceItems swaps in a new list with clamped weights. An empty list is
// ignored so the screen never ends up without rows.
func (s *Session) ReplaceItems(items []roulette.Item) {
	if len(items) == 0 {
		return
	}
	s.items = roulette.ClampItems(items)
}

// Spin draws min(drawCount, len(items)) distinct names and replaces the
// previous results with them.
func (s *Session) Spin(rng roulette.RandomSource) []string {
	s.results = roulette.DrawN(s.items, min(s.drawCount, len(s.items)), rng)
	return s.Results()
}

// Share builds the share link from pageURL and remembers it.
func (s *Session) Share(pageURL string) string {
	s.shareText = sharecode.ShareURL(pageURL, s.items, s.drawCount)
	return s.shareText
}

// Load restores state from a share query. The draw count is always taken
// from the query; items only when the query carries at least one.
func (s *Session) Load(query string) {
	s.apply(sharecode.Decode(query))
}

func (s *Session) apply(st sharecode.State) {
	s.SetDrawCount(st.DrawCount)
	s.ReplaceItems(st.Items)
}
