package session_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xtding233/roulette/internal/roulette"
	"github.com/xtding233/roulette/internal/session"
	"github.com/xtding233/roulette/internal/sharecode"
)

type fixedRNG struct{ val float64 }

func (r fixedRNG) Float64() float64 { return r.val }

func TestNew(t *testing.T) {
	s := session.New()
	if diff := cmp.Diff([]roulette.Item{{Name: "", Weight: 1}}, s.Items()); diff != "" {
		t.Errorf("initial items (-want +got):\n%s", diff)
	}
	if s.DrawCount() != 1 {
		t.Errorf("expected draw count 1, got %d", s.DrawCount())
	}
	if len(s.Results()) != 0 || s.ShareText() != "" {
		t.Error("expected no results and no share text")
	}
}

func TestEditItems(t *testing.T) {
	s := session.New()
	s.AddItem()
	s.AddItem()
	s.UpdateName(0, "A")
	s.UpdateName(1, "B")
	s.UpdateName(2, "C")
	s.UpdateWeight(0, 3)
	s.UpdateWeight(1, 0)
	s.UpdateWeightText(2, "abc")
	s.RemoveItem(1)
	s.RemoveItem(7)
	s.RemoveItem(-1)
	s.UpdateName(9, "ignored")
	s.UpdateWeight(9, 5)

	want := []roulette.Item{{Name: "A", Weight: 3}, {Name: "C", Weight: 1}}
	if diff := cmp.Diff(want, s.Items()); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
}

func TestItemsIsACopy(t *testing.T) {
	s := session.New()
	got := s.Items()
	got[0].Name = "mutated"
	if s.Items()[0].Name != "" {
		t.Error("Items() leaked internal state")
	}
}

func TestSetDrawCount(t *testing.T) {
	s := session.New()
	cases := []struct {
		set  func()
		want int
	}{
		{func() { s.SetDrawCount(3) }, 3},
		{func() { s.SetDrawCount(0) }, 1},
		{func() { s.SetDrawCount(-4) }, 1},
		{func() { s.SetDrawCountText("5x") }, 5},
		{func() { s.SetDrawCountText("nope") }, 1},
	}
	for i, tc := range cases {
		tc.set()
		if got := s.DrawCount(); got != tc.want {
			t.Errorf("case %d: draw count %d, want %d", i, got, tc.want)
		}
	}
}

func TestSpin(t *testing.T) {
	s := session.FromState(sharecode.State{
		Items:     []roulette.Item{{Name: "A", Weight: 1}, {Name: "B", Weight: 1}, {Name: "C", Weight: 2}},
		DrawCount: 10,
	})
	got := s.Spin(fixedRNG{val: 0})
	if diff := cmp.Diff([]string{"A", "B", "C"}, got); diff != "" {
		t.Errorf("spin (-want +got):\n%s", diff)
	}

	s.SetDrawCount(1)
	got = s.Spin(fixedRNG{val: 0.99})
	if diff := cmp.Diff([]string{"C"}, got); diff != "" {
		t.Errorf("second spin should replace results (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"C"}, s.Results()); diff != "" {
		t.Errorf("stored results (-want +got):\n%s", diff)
	}
}

func TestShare(t *testing.T) {
	s := session.New()
	s.UpdateName(0, "A")
	s.UpdateWeight(0, 2)
	s.AddItem()
	s.UpdateName(1, "B")
	s.SetDrawCount(2)

	want := "https://roulette.test/app?name0=A&weight0=2&name1=B&weight1=1&draws=2"
	if got := s.Share("https://roulette.test/app?name0=old"); got != want {
		t.Errorf("Share() = %q, want %q", got, want)
	}
	if s.ShareText() != want {
		t.Errorf("ShareText() = %q, want %q", s.ShareText(), want)
	}
}

func TestLoad(t *testing.T) {
	t.Run("replaces items and draws", func(t *testing.T) {
		s := session.New()
		s.Load("?name0=A&weight0=2&name1=B&weight1=1&draws=2")
		want := []roulette.Item{{Name: "A", Weight: 2}, {Name: "B", Weight: 1}}
		if diff := cmp.Diff(want, s.Items()); diff != "" {
			t.Errorf("items (-want +got):\n%s", diff)
		}
		if s.DrawCount() != 2 {
			t.Errorf("draw count %d, want 2", s.DrawCount())
		}
	})

	t.Run("empty query keeps existing items", func(t *testing.T) {
		s := session.New()
		s.UpdateName(0, "keep")
		s.SetDrawCount(4)
		s.Load("")
		if diff := cmp.Diff([]roulette.Item{{Name: "keep", Weight: 1}}, s.Items()); diff != "" {
			t.Errorf("items (-want +got):\n%s", diff)
		}
		if s.DrawCount() != 1 {
			t.Errorf("draw count should reset to the decoded default, got %d", s.DrawCount())
		}
	})

	t.Run("draws without items", func(t *testing.T) {
		s := session.New()
		s.UpdateName(0, "keep")
		s.Load("draws=3")
		if s.Items()[0].Name != "keep" || s.DrawCount() != 3 {
			t.Errorf("unexpected state: %+v draws=%d", s.Items(), s.DrawCount())
		}
	})

	t.Run("clamps decoded values", func(t *testing.T) {
		s := session.New()
		s.Load("name0=A&weight0=0&name1=B&weight1=-2&draws=0")
		want := []roulette.Item{{Name: "A", Weight: 1}, {Name: "B", Weight: 1}}
		if diff := cmp.Diff(want, s.Items()); diff != "" {
			t.Errorf("items (-want +got):\n%s", diff)
		}
		if s.DrawCount() != 1 {
			t.Errorf("draw count %d, want 1", s.DrawCount())
		}
	})
}

func TestReplaceItemsIgnoresEmpty(t *testing.T) {
	s := session.New()
	s.UpdateName(0, "keep")
	s.ReplaceItems(nil)
	if s.Items()[0].Name != "keep" {
		t.Error("empty replacement cleared the list")
	}
}

func TestShareLoadRoundTrip(t *testing.T) {
	a := session.New()
	a.UpdateName(0, "Fish & Chips")
	a.UpdateWeight(0, 2.5)
	a.AddItem()
	a.UpdateName(1, "Tacos")
	a.SetDrawCount(2)

	b := session.New()
	b.Load(sharecode.RawQuery(a.Share("https://roulette.test/")))
	if diff := cmp.Diff(a.State(), b.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}
