// Package act models a parsed piece of legislation: the act identity,
// its structural element tree, and the recognized phrase spans attached
// to leaf elements. The tree is built once by the structural parser and
// frozen afterwards; phrase recognition only fills in leaf spans, never
// reshapes the tree.
package act

import (
	"fmt"
	"time"

	"github.com/lawtext/gazette/internal/phrase"
	"github.com/lawtext/gazette/internal/reference"
)

// Kind is the closed set of structural element variants.
type Kind int

const (
	// KindPreamble is the unnumbered text before the first article.
	KindPreamble Kind = iota
	// KindArticle is a "§" division, the top addressing level.
	KindArticle
	// KindParagraph is a "(n)" subdivision of an article.
	KindParagraph
	// KindNumericPoint is an "n." enumeration item.
	KindNumericPoint
	// KindAlphabeticPoint is an "x)" enumeration item.
	KindAlphabeticPoint
	// KindSubpoint is a nested "xy)" item; subpoints nest recursively.
	KindSubpoint
)

func (k Kind) String() string {
	switch k {
	case KindPreamble:
		return "preamble"
	case KindArticle:
		return "article"
	case KindParagraph:
		return "paragraph"
	case KindNumericPoint:
		return "numeric-point"
	case KindAlphabeticPoint:
		return "alphabetic-point"
	case KindSubpoint:
		return "subpoint"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Level maps an element kind to its addressing level.
func (k Kind) Level() reference.LevelKind {
	switch k {
	case KindArticle:
		return reference.LevelArticle
	case KindParagraph:
		return reference.LevelParagraph
	case KindNumericPoint, KindAlphabeticPoint:
		return reference.LevelPoint
	default:
		return reference.LevelSubpoint
	}
}

// Element is one node of the structural tree. An element holds either
// leaf Text or Children, never both; Intro and WrapUp carry the text
// around a child enumeration ("From now on: a) ... b) ..., unless.").
type Element struct {
	Kind Kind
	// ID is the canonical identifier token: "5" or "5/A" for articles,
	// "2" for paragraphs and numeric points, "a" or "ab" for
	// alphabetic points and subpoints. Empty for preambles and for the
	// implicit single paragraph of an article.
	ID string

	Text   string
	Intro  string
	WrapUp string

	Children []*Element

	// Spans is the phrase-recognized split of Text (or Intro for
	// non-leaf elements). Filled in after structural parsing.
	Spans []phrase.Span

	// parent is a non-owning back-reference used only for address
	// construction.
	parent *Element
}

// IsLeaf reports whether the element carries leaf text.
func (e *Element) IsLeaf() bool {
	return len(e.Children) == 0
}

// Parent returns the enclosing element, or nil at article level.
func (e *Element) Parent() *Element {
	return e.parent
}

// AddChild appends a child and sets its back-reference.
func (e *Element) AddChild(c *Element) {
	c.parent = e
	e.Children = append(e.Children, c)
}

// Path returns the address steps from article down to this element,
// skipping unnumbered levels (preamble, implicit paragraphs).
func (e *Element) Path() []reference.Step {
	var rev []reference.Step
	for cur := e; cur != nil; cur = cur.parent {
		if cur.Kind == KindPreamble || cur.ID == "" {
			continue
		}
		rev = append(rev, reference.Step{Kind: cur.Kind.Level(), ID: cur.ID})
	}
	steps := make([]reference.Step, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		steps = append(steps, rev[i])
	}
	return steps
}

// Walk visits e and all elements below it in document order.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Act is one parsed piece of legislation.
type Act struct {
	ID reference.ActID
	// Subject is the "a ... about ..." line following the title.
	Subject string
	// Published is the gazette issue publication date, when known.
	Published time.Time
	// Children is the ordered structural sequence: an optional
	// preamble element followed by articles.
	Children []*Element
	// Headings preserves chapter/subtitle headings, which address
	// nothing but must not be lost.
	Headings []Heading
}

// Heading is a structural title (chapter, part, subtitle) preserved
// out of band: headings carry no address and have no children.
type Heading struct {
	// BeforeArticle is the identifier of the article the heading
	// precedes; empty if the heading closes the act.
	BeforeArticle string `json:"before_article,omitempty"`
	Text          string `json:"text"`
}

// AddChild appends a top-level element to the act.
func (a *Act) AddChild(e *Element) {
	a.Children = append(a.Children, e)
}

// Article returns the article with the given canonical identifier.
func (a *Act) Article(id string) (*Element, bool) {
	for _, c := range a.Children {
		if c.Kind == KindArticle && c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Walk visits every structural element of the act in document order.
func (a *Act) Walk(fn func(*Element)) {
	for _, c := range a.Children {
		c.Walk(fn)
	}
}

// Lookup dereferences an address path against this act's tree.
// A Reference is re-resolved on every call: the tree current at call
// time decides what exists.
func (a *Act) Lookup(path []reference.Step) (*Element, bool) {
	if len(path) == 0 || path[0].Kind != reference.LevelArticle {
		return nil, false
	}
	cur, ok := a.Article(path[0].ID)
	if !ok {
		return nil, false
	}
	for _, step := range path[1:] {
		next := findChild(cur, step)
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func findChild(e *Element, step reference.Step) *Element {
	for _, c := range e.Children {
		if c.ID == step.ID && c.Kind.Level() == step.Kind {
			return c
		}
	}
	// Deeper steps address through an article's implicit single
	// unnumbered paragraph transparently.
	if e.Kind == KindArticle && len(e.Children) == 1 &&
		e.Children[0].Kind == KindParagraph && e.Children[0].ID == "" {
		return findChild(e.Children[0], step)
	}
	return nil
}
