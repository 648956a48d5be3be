package preset

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestValidateRaw(t *testing.T) {
	cases := []struct {
		name    string
		cfg     RawPreset
		wantErr string
	}{
		{"ok", RawPreset{Items: []RawItem{{Name: "A"}, {Name: "B", Weight: ptr(3.0)}}}, ""},
		{"empty items", RawPreset{}, "items must not be empty"},
		{"zero draws", RawPreset{Draws: ptr(0), Items: []RawItem{{Name: "A"}}}, "draws must be >= 1"},
		{"default weight", RawPreset{Weight: ptr(0.5), Items: []RawItem{{Name: "A"}}}, "weight must be"},
		{"nan weight", RawPreset{Items: []RawItem{{Name: "A", Weight: ptr(math.NaN())}}}, "items[0].weight"},
		{"duplicate", RawPreset{Items: []RawItem{{Name: "A"}, {Name: "A"}}}, `items[1].name "A" duplicates items[0]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRaw(tc.cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidPreset) || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateRawJoinsErrors(t *testing.T) {
	err := ValidateRaw(RawPreset{Draws: ptr(-1)})
	if err == nil || strings.Count(err.Error(), ";") != 1 {
		t.Fatalf("expected two joined errors, got %v", err)
	}
}

func TestValidName(t *testing.T) {
	for name, want := range map[string]bool{
		"lunch":    true,
		"team-a_2": true,
		"default":  false,
		"Lunch":    false,
		"../x":     false,
		"-x":       false,
		"":         false,
	} {
		if got := ValidName(name); got != want {
			t.Errorf("ValidName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestMergeRaw(t *testing.T) {
	a := RawPreset{Version: "1", Draws: ptr(1), Weight: ptr(2.0), Items: []RawItem{{Name: "X"}}}
	b := RawPreset{Title: "T", Draws: ptr(3)}
	out := mergeRaw(a, b)
	if out.Version != "1" || out.Title != "T" || *out.Draws != 3 || *out.Weight != 2 {
		t.Fatalf("unexpected merge %+v", out)
	}
	if len(out.Items) != 1 || out.Items[0].Name != "X" {
		t.Fatalf("expected default items kept, got %+v", out.Items)
	}
}
