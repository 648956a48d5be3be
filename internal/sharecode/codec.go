// Package sharecode maps a roulette's items and draw count to a URL query
// string and back.
//
// The format is flat and positional:
//
//	name0=A&weight0=2&name1=B&weight1=1&draws=2
//
// Decoding never fails. Missing or malformed numbers fall back to 1, and the
// item scan stops at the first missing nameN.
package sharecode

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/xtding233/roulette/internal/roulette"
)

const drawsKey = "draws"

// State is the part of a session that travels in a share string.
type State struct {
	Items     []roulette.Item `json:"items"`
	DrawCount int             `json:"draws"`
}

// Empty reports whether no items were decoded.
func (s State) Empty() bool { return len(s.Items) == 0 }

func nameKey(i int) string   { return "name" + strconv.Itoa(i) }
func weightKey(i int) string { return "weight" + strconv.Itoa(i) }

// FormatWeight renders w in the shortest plain decimal form ("2", "2.5").
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// Encode writes items in order, then draws. Keys are never sorted.
func Encode(items []roulette.Item, drawCount int) string {
	var b strings.Builder
	for i, it := range items {
		b.WriteString(nameKey(i))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(it.Name))
		b.WriteByte('&')
		b.WriteString(weightKey(i))
		b.WriteByte('=')
		b.WriteString(FormatWeight(it.Weight))
		b.WriteByte('&')
	}
	b.WriteString(drawsKey)
	b.WriteByte('=')
	b.WriteString(strconv.Itoa(drawCount))
	return b.String()
}

// Decode reads a share query. A leading '?' is allowed. Pairs with broken
// escapes are skipped; repeated keys keep their first value.
func Decode(query string) State {
	// ParseQuery keeps every well-formed pair even when it reports an error.
	values, _ := url.ParseQuery(strings.TrimPrefix(query, "?"))

	st := State{DrawCount: 1}
	for i := 0; values.Has(nameKey(i)); i++ {
		w := 1.0
		if values.Has(weightKey(i)) {
			w = roulette.ParseWeight(values.Get(weightKey(i)))
		}
		st.Items = append(st.Items, roulette.Item{Name: values.Get(nameKey(i)), Weight: w})
	}
	if values.Has(drawsKey) {
		st.DrawCount = roulette.ParseDrawCount(values.Get(drawsKey))
	}
	return st
}

// ShareURL appends the encoded state to pageURL, dropping any query pageURL
// already carries.
func ShareURL(pageURL string, items []roulette.Item, drawCount int) string {
	base, _, _ := strings.Cut(pageURL, "?")
	return base + "?" + Encode(items, drawCount)
}

// RawQuery extracts the query component from either a full share URL or a
// bare query string. Text is read as a URL only when the part before its
// first '?' holds no '=' or '&'; a bare query may carry unescaped '?' and
// "://" inside values. A URL without a query yields "".
func RawQuery(s string) string {
	s = strings.TrimSpace(s)
	head, q, hasQuery := strings.Cut(s, "?")
	if strings.ContainsAny(head, "=&") {
		return s
	}
	if hasQuery {
		s = q
	} else if strings.Contains(s, "://") {
		return ""
	}
	q, _, _ = strings.Cut(s, "#")
	return q
}
