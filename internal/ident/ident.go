// Package ident normalizes and orders the identifier tokens used by
// gazette acts: numeric article numbers with insertion suffixes ("5",
// "5/A"), numeric point numbers, alphabetic point and subpoint letters,
// and roman numerals for act serials.
package ident

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var articleIDRe = regexp.MustCompile(`^([0-9]+)(?:/([A-Z]))?$`)

// SplitArticle parses a canonical article identifier into its numeric
// part and optional insertion suffix ("5/A" → 5, "A").
func SplitArticle(id string) (num int, suffix string, err error) {
	m := articleIDRe.FindStringSubmatch(id)
	if m == nil {
		return 0, "", fmt.Errorf("invalid article identifier %q", id)
	}
	num, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, "", fmt.Errorf("invalid article number %q: %w", m[1], err)
	}
	return num, m[2], nil
}

// ArticleIsNext reports whether cur directly follows prev in canonical
// article order. Insertions interleave: after "5" come both "6" and
// "5/A", and after "5/A" come both "6" and "5/B".
func ArticleIsNext(prev, cur string) bool {
	pn, ps, err := SplitArticle(prev)
	if err != nil {
		return false
	}
	cn, cs, err := SplitArticle(cur)
	if err != nil {
		return false
	}
	if cn == pn+1 && cs == "" {
		return true
	}
	if cn == pn {
		if ps == "" {
			return cs == "A"
		}
		return len(cs) == 1 && cs[0] == ps[0]+1
	}
	return false
}

// ArticleLess orders two canonical article identifiers.
// A bare number sorts before its insertions: 5 < 5/A < 5/B < 6.
func ArticleLess(a, b string) bool {
	an, as, errA := SplitArticle(a)
	bn, bs, errB := SplitArticle(b)
	if errA != nil || errB != nil {
		return a < b
	}
	if an != bn {
		return an < bn
	}
	return as < bs
}

// NumericIsNext reports whether cur == prev+1 for plain numeric tokens.
func NumericIsNext(prev, cur string) bool {
	p, errP := strconv.Atoi(prev)
	c, errC := strconv.Atoi(cur)
	return errP == nil && errC == nil && c == p+1
}

// NextAlpha returns the next alphabetic identifier at the same nesting
// level: "a" → "b", and for prefixed subpoints "ab" → "ac". The empty
// string yields "a".
func NextAlpha(id string) string {
	if id == "" {
		return "a"
	}
	last := id[len(id)-1]
	if last >= 'z' {
		// "z" has no successor at this level; callers treat this as
		// end of enumeration.
		return ""
	}
	return id[:len(id)-1] + string(last+1)
}

// AlphaIsNext reports whether cur directly follows prev alphabetically,
// sharing any subpoint prefix.
func AlphaIsNext(prev, cur string) bool {
	next := NextAlpha(prev)
	return next != "" && next == cur
}

// AlphaRange expands a closed alphabetic range into the identifiers it
// covers, in canonical order: ("a","c") → [a b c]. Both endpoints must
// share the same prefix. Returns an error for reversed or mixed ranges.
func AlphaRange(first, last string) ([]string, error) {
	if first == "" || last == "" {
		return nil, fmt.Errorf("empty range endpoint")
	}
	if first[:len(first)-1] != last[:len(last)-1] {
		return nil, fmt.Errorf("range endpoints %q and %q have different prefixes", first, last)
	}
	if first[len(first)-1] > last[len(last)-1] {
		return nil, fmt.Errorf("reversed range %q-%q", first, last)
	}
	var out []string
	for id := first; ; id = NextAlpha(id) {
		out = append(out, id)
		if id == last || id == "" {
			break
		}
	}
	return out, nil
}

// NumericRange expands a closed numeric range: ("2","4") → [2 3 4].
func NumericRange(first, last string) ([]string, error) {
	f, errF := strconv.Atoi(first)
	l, errL := strconv.Atoi(last)
	if errF != nil || errL != nil {
		return nil, fmt.Errorf("non-numeric range %q-%q", first, last)
	}
	if f > l {
		return nil, fmt.Errorf("reversed range %q-%q", first, last)
	}
	out := make([]string, 0, l-f+1)
	for i := f; i <= l; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out, nil
}

var romanValues = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// FormatRoman renders n as an uppercase roman numeral.
func FormatRoman(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.symbol)
			n -= rv.value
		}
	}
	return b.String()
}

var romanDigits = map[byte]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

// ParseRoman parses an uppercase roman numeral. The round trip through
// FormatRoman must reproduce the input, which rejects degenerate forms
// like "IIII".
func ParseRoman(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty roman numeral")
	}
	total := 0
	for i := 0; i < len(s); i++ {
		v, ok := romanDigits[s[i]]
		if !ok {
			return 0, fmt.Errorf("invalid roman numeral %q", s)
		}
		if i+1 < len(s) && romanDigits[s[i+1]] > v {
			total -= v
		} else {
			total += v
		}
	}
	if FormatRoman(total) != s {
		return 0, fmt.Errorf("non-canonical roman numeral %q", s)
	}
	return total, nil
}
