package sharecode_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xtding233/roulette/internal/roulette"
	"github.com/xtding233/roulette/internal/sharecode"
)

func TestEncode(t *testing.T) {
	cases := []struct {
		name  string
		items []roulette.Item
		draws int
		want  string
	}{
		{
			name:  "two items",
			items: []roulette.Item{{Name: "A", Weight: 2}, {Name: "B", Weight: 1}},
			draws: 2,
			want:  "name0=A&weight0=2&name1=B&weight1=1&draws=2",
		},
		{
			name:  "no items",
			draws: 1,
			want:  "draws=1",
		},
		{
			name:  "escaped names and decimal weight",
			items: []roulette.Item{{Name: "Fish & Chips", Weight: 2.5}, {Name: "a=b", Weight: 1}},
			draws: 1,
			want:  "name0=Fish+%26+Chips&weight0=2.5&name1=a%3Db&weight1=1&draws=1",
		},
		{
			name:  "empty name",
			items: []roulette.Item{{Name: "", Weight: 1}},
			draws: 1,
			want:  "name0=&weight0=1&draws=1",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sharecode.Encode(tc.items, tc.draws); got != tc.want {
				t.Errorf("Encode() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []sharecode.State{
		{Items: []roulette.Item{{Name: "A", Weight: 2}, {Name: "B", Weight: 1}}, DrawCount: 2},
		{Items: []roulette.Item{{Name: "", Weight: 1}}, DrawCount: 1},
		{Items: []roulette.Item{{Name: "寿司 & ramen?", Weight: 3.75}, {Name: "100%", Weight: 1e21}}, DrawCount: 7},
		{Items: []roulette.Item{{Name: "same", Weight: 1}, {Name: "same", Weight: 4}, {Name: "#hash+plus", Weight: 0.1}}, DrawCount: 3},
	}
	for _, want := range cases {
		got := sharecode.Decode(sharecode.Encode(want.Items, want.DrawCount))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestDecode(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  sharecode.State
	}{
		{
			name:  "lenient numbers",
			query: "name0=X&weight0=abc&draws=zz",
			want:  sharecode.State{Items: []roulette.Item{{Name: "X", Weight: 1}}, DrawCount: 1},
		},
		{
			name:  "empty",
			query: "",
			want:  sharecode.State{DrawCount: 1},
		},
		{
			name:  "leading question mark and integer prefix",
			query: "?name0=A&weight0=3&draws=3abc",
			want:  sharecode.State{Items: []roulette.Item{{Name: "A", Weight: 3}}, DrawCount: 3},
		},
		{
			name:  "gap stops the scan",
			query: "name0=A&weight0=2&name2=C&weight2=5",
			want:  sharecode.State{Items: []roulette.Item{{Name: "A", Weight: 2}}, DrawCount: 1},
		},
		{
			name:  "missing weight",
			query: "name0=A&name1=B&weight1=4",
			want:  sharecode.State{Items: []roulette.Item{{Name: "A", Weight: 1}, {Name: "B", Weight: 4}}, DrawCount: 1},
		},
		{
			name:  "no name0",
			query: "name1=B&draws=4",
			want:  sharecode.State{DrawCount: 4},
		},
		{
			name:  "broken escapes are skipped",
			query: "name0=A&weight0=2&name1=%zz&draws=%zz",
			want:  sharecode.State{Items: []roulette.Item{{Name: "A", Weight: 2}}, DrawCount: 1},
		},
		{
			name:  "first value wins",
			query: "name0=A&name0=B&weight0=2&weight0=9",
			want:  sharecode.State{Items: []roulette.Item{{Name: "A", Weight: 2}}, DrawCount: 1},
		},
		{
			name:  "values are not clamped",
			query: "name0=A&weight0=0&draws=0",
			want:  sharecode.State{Items: []roulette.Item{{Name: "A", Weight: 0}}, DrawCount: 0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sharecode.Decode(tc.query)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Decode(%q) mismatch (-want +got):\n%s", tc.query, diff)
			}
			if got.Empty() != (len(tc.want.Items) == 0) {
				t.Errorf("Empty() = %v", got.Empty())
			}
		})
	}
}

func TestShareURL(t *testing.T) {
	items := []roulette.Item{{Name: "A", Weight: 2}}
	cases := map[string]string{
		"https://roulette.test/":          "https://roulette.test/?name0=A&weight0=2&draws=1",
		"https://roulette.test/r?old=1&x": "https://roulette.test/r?name0=A&weight0=2&draws=1",
		"":                                "?name0=A&weight0=2&draws=1",
	}
	for page, want := range cases {
		if got := sharecode.ShareURL(page, items, 1); got != want {
			t.Errorf("ShareURL(%q) = %q, want %q", page, got, want)
		}
	}
}

func TestRawQuery(t *testing.T) {
	cases := map[string]string{
		"https://roulette.test/?name0=A&draws=1":      "name0=A&draws=1",
		"https://roulette.test/?name0=A&draws=1#spin": "name0=A&draws=1",
		"?name0=A":                                    "name0=A",
		"name0=A&draws=2":                             "name0=A&draws=2",
		"  name0=A  ":                                 "name0=A",
		"https://roulette.test/":                      "",
		"":                                            "",
		"name0=what?&weight0=2&draws=1":               "name0=what?&weight0=2&draws=1",
		"name0=http://x&draws=3":                      "name0=http://x&draws=3",
		"https://r.test/?name0=http://x&draws=3":      "name0=http://x&draws=3",
	}
	for in, want := range cases {
		if got := sharecode.RawQuery(in); got != want {
			t.Errorf("RawQuery(%q) = %q, want %q", in, got, want)
		}
	}
}
