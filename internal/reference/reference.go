// Package reference models normalized, unresolved addresses of act
// structural elements. A Reference is a pure lookup key: it never owns
// the element it points to and is re-resolved against whatever tree is
// current when dereferenced.
package reference

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lawtext/gazette/internal/ident"
)

// ActID identifies an act by publication year and roman-numeral serial.
type ActID struct {
	Year   int    `json:"year"`
	Serial string `json:"serial"`
}

// String renders the conventional citation form, e.g.
// "2011. évi CLXXVII. törvény".
func (id ActID) String() string {
	return fmt.Sprintf("%d. évi %s. törvény", id.Year, id.Serial)
}

// IsZero reports whether the identity is unset.
func (id ActID) IsZero() bool {
	return id.Year == 0 && id.Serial == ""
}

var actIDRe = regexp.MustCompile(`^([12][0-9]{3})\. évi ([IVXLCDM]+)\. törvény$`)

// ParseActID parses the conventional citation form into an ActID.
// The serial must be a canonical roman numeral.
func ParseActID(s string) (ActID, error) {
	m := actIDRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ActID{}, fmt.Errorf("malformed act identifier %q", s)
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return ActID{}, fmt.Errorf("malformed act year in %q: %w", s, err)
	}
	if _, err := ident.ParseRoman(m[2]); err != nil {
		return ActID{}, fmt.Errorf("malformed act serial in %q: %w", s, err)
	}
	return ActID{Year: year, Serial: m[2]}, nil
}

// LevelKind names a structural addressing level.
type LevelKind string

const (
	LevelArticle   LevelKind = "article"
	LevelParagraph LevelKind = "paragraph"
	LevelPoint     LevelKind = "point"
	LevelSubpoint  LevelKind = "subpoint"
)

// Step is one (level, identifier) pair of an address path.
type Step struct {
	Kind LevelKind `json:"kind"`
	ID   string    `json:"id"`
}

// Reference is a fully qualified address of a structural element, or of
// a closed range of sibling elements at the deepest level.
type Reference struct {
	// Act is the target act. A nil Act means "this act": the resolver
	// always fills it in, so nil only appears in hand-built values.
	Act *ActID `json:"act,omitempty"`
	// Path is the ordered address from article down to the deepest
	// cited level.
	Path []Step `json:"path"`
	// RangeEnd, when set, closes an inclusive range at the deepest
	// level starting at the last path step's identifier.
	RangeEnd string `json:"range_end,omitempty"`
}

// Deepest returns the final step of the path.
func (r Reference) Deepest() (Step, bool) {
	if len(r.Path) == 0 {
		return Step{}, false
	}
	return r.Path[len(r.Path)-1], true
}

// RangeIDs expands the deepest-level range into the identifiers it
// covers, in canonical order. Expansion is purely textual: it does not
// consult any tree, so "a)–c)" yields {a, b, c} whether or not b)
// exists at resolution time. A rangeless reference yields its single
// deepest identifier.
func (r Reference) RangeIDs() ([]string, error) {
	last, ok := r.Deepest()
	if !ok {
		return nil, fmt.Errorf("reference has empty path")
	}
	if r.RangeEnd == "" {
		return []string{last.ID}, nil
	}
	if isNumericToken(last.ID) && isNumericToken(r.RangeEnd) {
		return ident.NumericRange(last.ID, r.RangeEnd)
	}
	return ident.AlphaRange(last.ID, r.RangeEnd)
}

// String renders a compact debug form, e.g.
// "2011/CLXXVII 5.§ (2) a)-c)".
func (r Reference) String() string {
	var b strings.Builder
	if r.Act != nil {
		fmt.Fprintf(&b, "%d/%s ", r.Act.Year, r.Act.Serial)
	}
	for _, s := range r.Path {
		switch s.Kind {
		case LevelArticle:
			fmt.Fprintf(&b, "%s.§ ", s.ID)
		case LevelParagraph:
			fmt.Fprintf(&b, "(%s) ", s.ID)
		default:
			fmt.Fprintf(&b, "%s) ", s.ID)
		}
	}
	out := strings.TrimSpace(b.String())
	if r.RangeEnd != "" {
		out += fmt.Sprintf("-%s)", r.RangeEnd)
	}
	return out
}

func isNumericToken(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
