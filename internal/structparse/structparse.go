// Package structparse decomposes one act's raw body paragraphs into
// the structural element tree: articles, paragraphs, points and
// subpoints, each level with its own numbering grammar. Parsing is
// conservative: a marker is accepted only when its numbering is
// strictly sequential and its indentation matches the level's
// established style, otherwise the paragraph is treated as
// continuation text and a structural-confidence warning is recorded.
// Nothing here is fatal; degradation always means "more text, less
// structure".
package structparse

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/lawtext/gazette/internal/act"
	"github.com/lawtext/gazette/internal/assemble"
	"github.com/lawtext/gazette/internal/ident"
	"github.com/lawtext/gazette/internal/issue"
)

// Warning is one recorded structural degradation.
type Warning struct {
	// Para is the index of the body paragraph the warning refers to.
	Para int
	Msg  string
}

func (w Warning) String() string {
	return fmt.Sprintf("paragraph %d: %s", w.Para, w.Msg)
}

var (
	articleMarkerRe   = regexp.MustCompile(`^([0-9]+(?:/[A-Z])?)\. ?§\s*`)
	paragraphMarkerRe = regexp.MustCompile(`^\(([0-9]+[a-z]?)\)\s*`)
	alphaMarkerRe     = regexp.MustCompile(`^([a-z]{1,3})\)\s*`)
	numericMarkerRe   = regexp.MustCompile(`^([0-9]+)\.\s+`)

	// markerLikeRe spots paragraphs that look like they open an
	// element; rejecting one of these is worth an audit record.
	markerLikeRe = regexp.MustCompile(`^(?:[0-9]+(?:/[A-Z])?\. ?§|\([0-9]+[a-z]?\)|[a-z]{1,3}\)|[0-9]+\.\s)`)

	paragraphIDRe = regexp.MustCompile(`^([0-9]+)([a-z]?)$`)
)

// indentTol is the slack allowed between a marker's indentation and
// the established indentation of its level.
const indentTol = 6.0

// Parse builds the structural tree for one raw act.
func Parse(raw issue.RawAct) (*act.Act, []Warning) {
	p := &parser{
		act: &act.Act{
			ID:      raw.ID,
			Subject: raw.Subject,
		},
		indents:  make(map[int]float64),
		lastWarn: -1,
	}
	for i, para := range raw.Body {
		p.feed(i, para)
	}
	p.finish()
	return p.act, p.warnings
}

type parser struct {
	act      *act.Act
	stack    []*act.Element // open chain, stack[0] is the current article
	indents  map[int]float64
	preamble []string
	pending  []string // headings awaiting the next article
	warnings []Warning
	quotes   int // open „ blocks spanning paragraphs
	lastWarn int // paragraph index of the latest warning
}

// depth indices into the open chain.
const (
	depthArticle = iota
	depthParagraph
	depthPoint
)

func (p *parser) warnf(para int, format string, args ...any) {
	p.warnings = append(p.warnings, Warning{Para: para, Msg: fmt.Sprintf(format, args...)})
	p.lastWarn = para
}

func (p *parser) feed(idx int, para assemble.Paragraph) {
	text := strings.TrimSpace(para.Text)
	if text == "" {
		return
	}

	// Inside a quoted block everything is payload; structure resumes
	// only after the closing quote.
	if p.quotes > 0 {
		p.appendContinuation(text, para.Indent)
		return
	}

	switch para.Kind {
	case assemble.KindHeading:
		p.pending = append(p.pending, text)
		return
	case assemble.KindTableLike:
		p.appendContinuation(text, para.Indent)
		return
	case assemble.KindUnclassified:
		p.warnf(idx, "unclassified line folded into current element")
		p.appendContinuation(text, para.Indent)
		return
	}

	if p.tryArticle(idx, text, para.Indent) {
		return
	}
	if p.tryMarker(idx, text, para.Indent) {
		return
	}
	if markerLikeRe.MatchString(text) && len(p.stack) > 0 && p.lastWarn != idx {
		p.warnf(idx, "marker-like start %q treated as continuation", head(text))
	}
	p.appendContinuation(text, para.Indent)
}

// tryArticle opens a new article if the paragraph starts with a
// sequential article marker at the article indentation.
func (p *parser) tryArticle(idx int, text string, indent float64) bool {
	m := articleMarkerRe.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	id := m[1]
	if last := p.lastArticleID(); last != "" {
		if !ident.ArticleIsNext(last, id) {
			if markerCouldBeArticle(text) && len(p.stack) > 0 {
				// Looks like an article header but the numbering does
				// not follow; conservative nesting keeps it as text.
				p.warnf(idx, "article marker %q out of sequence after %q, treated as continuation", id, last)
			}
			return false
		}
	}
	if !p.indentOK(depthArticle, indent) {
		p.warnf(idx, "article marker %q at unexpected indentation, treated as continuation", id)
		return false
	}

	el := &act.Element{Kind: act.KindArticle, ID: id}
	p.flushPreamble()
	p.attachHeadings(id)
	p.act.AddChild(el)
	p.stack = []*act.Element{el}
	p.establish(depthArticle, indent)

	rest := text[len(m[0]):]
	if pm := paragraphMarkerRe.FindStringSubmatch(rest); pm != nil && pm[1] == "1" {
		p.openChild(act.KindParagraph, pm[1], rest[len(pm[0]):])
	} else if rest != "" {
		// No "(1)": the article body is an implicit single
		// unnumbered paragraph.
		p.openChild(act.KindParagraph, "", rest)
	}
	return true
}

// tryMarker opens a sibling at some open level or a first child of the
// deepest open element. Shallower levels are tried first; each level
// accepts only strictly sequential numbering at its established
// indentation.
func (p *parser) tryMarker(idx int, text string, indent float64) bool {
	if len(p.stack) == 0 {
		return false
	}

	// Sibling at an open level, shallowest first.
	for d := 0; d < len(p.stack); d++ {
		el := p.stack[d]
		if el.Kind == act.KindArticle {
			continue // handled by tryArticle
		}
		id, rest, ok := matchMarkerOfKind(el.Kind, text)
		if !ok || !isNextSibling(el.Kind, el.ID, id) {
			continue
		}
		if !p.indentOK(d, indent) {
			p.warnf(idx, "marker %q at unexpected indentation for its level, treated as continuation", id)
			return false
		}
		p.closeTo(d)
		parentAdd := p.parentAt(d)
		sib := &act.Element{Kind: el.Kind, ID: id}
		parentAdd(sib)
		p.stack = append(p.stack[:d], sib)
		p.establish(d, indent)
		p.appendText(sib, rest)
		return true
	}

	// First child of the deepest open element.
	deepest := p.stack[len(p.stack)-1]
	kind, firstID, ok := firstChildOf(deepest)
	if ok {
		if id, rest, match := matchMarkerOfKind(kind, text); match && id == firstID {
			d := len(p.stack)
			if !p.indentOK(d, indent) {
				p.warnf(idx, "marker %q at unexpected indentation for a new level, treated as continuation", id)
				return false
			}
			p.openChild(kind, id, rest)
			p.establish(d, indent)
			return true
		}
		// A paragraph enumerates either numeric or alphabetic points;
		// the alphabetic form is the fallback.
		if kind == act.KindNumericPoint {
			if id, rest, match := matchMarkerOfKind(act.KindAlphabeticPoint, text); match && id == "a" {
				d := len(p.stack)
				if p.indentOK(d, indent) {
					p.openChild(act.KindAlphabeticPoint, id, rest)
					p.establish(d, indent)
					return true
				}
			}
		}
	}
	return false
}

// firstChildOf returns the child level and expected first identifier
// below an element. Numeric points are tried before alphabetic ones;
// the alphabetic fallback lives in tryMarker.
func firstChildOf(e *act.Element) (act.Kind, string, bool) {
	switch e.Kind {
	case act.KindParagraph:
		return act.KindNumericPoint, "1", true
	case act.KindNumericPoint:
		return act.KindSubpoint, "a", true
	case act.KindAlphabeticPoint, act.KindSubpoint:
		// Subpoints nest recursively with a growing prefix:
		// point a) has subpoints aa), ab), ...
		return act.KindSubpoint, e.ID + "a", true
	default:
		return 0, "", false
	}
}

// matchMarkerOfKind matches the marker grammar of one level at the
// start of text and returns the identifier and remaining text.
func matchMarkerOfKind(kind act.Kind, text string) (id, rest string, ok bool) {
	switch kind {
	case act.KindParagraph:
		if m := paragraphMarkerRe.FindStringSubmatch(text); m != nil {
			return m[1], text[len(m[0]):], true
		}
	case act.KindNumericPoint:
		if m := numericMarkerRe.FindStringSubmatch(text); m != nil {
			return m[1], text[len(m[0]):], true
		}
	case act.KindAlphabeticPoint, act.KindSubpoint:
		if m := alphaMarkerRe.FindStringSubmatch(text); m != nil {
			return m[1], text[len(m[0]):], true
		}
	}
	return "", "", false
}

// isNextSibling applies the level's canonical successor rule.
func isNextSibling(kind act.Kind, prev, cur string) bool {
	switch kind {
	case act.KindParagraph:
		return paragraphIsNext(prev, cur)
	case act.KindNumericPoint:
		return ident.NumericIsNext(prev, cur)
	case act.KindAlphabeticPoint, act.KindSubpoint:
		return ident.AlphaIsNext(prev, cur)
	default:
		return false
	}
}

// paragraphIsNext handles plain succession and letter-suffixed
// insertions: (1) → (2), (1) → (1a), (1a) → (1b).
func paragraphIsNext(prev, cur string) bool {
	if prev == "" {
		return false
	}
	pm := paragraphIDRe.FindStringSubmatch(prev)
	cm := paragraphIDRe.FindStringSubmatch(cur)
	if pm == nil || cm == nil {
		return false
	}
	if pm[1] != cm[1] {
		return ident.NumericIsNext(pm[1], cm[1]) && cm[2] == ""
	}
	if pm[2] == "" {
		return cm[2] == "a"
	}
	return len(cm[2]) == 1 && cm[2][0] == pm[2][0]+1
}

func markerCouldBeArticle(text string) bool {
	return articleMarkerRe.MatchString(text)
}

// openChild pushes a new element under the deepest open one. If the
// parent already holds leaf text, that text becomes its intro.
func (p *parser) openChild(kind act.Kind, id, text string) {
	parent := p.stack[len(p.stack)-1]
	if parent.Text != "" {
		parent.Intro = parent.Text
		parent.Text = ""
	}
	el := &act.Element{Kind: kind, ID: id}
	parent.AddChild(el)
	p.stack = append(p.stack, el)
	p.appendText(el, text)
}

// closeTo truncates the open chain to depth d (exclusive of d itself).
func (p *parser) closeTo(d int) {
	p.stack = p.stack[:d]
}

// parentAt returns the add-child function for a sibling at depth d.
func (p *parser) parentAt(d int) func(*act.Element) {
	if d == 0 {
		return p.act.AddChild
	}
	return p.stack[d-1].AddChild
}

// appendText extends an element's leaf text (or wrap-up once the
// element has children) and tracks quote balance.
func (p *parser) appendText(el *act.Element, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	switch {
	case len(el.Children) > 0:
		el.WrapUp = join(el.WrapUp, text)
	default:
		el.Text = join(el.Text, text)
	}
	p.quotes += quoteDiff(text)
	if p.quotes < 0 {
		p.quotes = 0
	}
}

// appendContinuation folds text into the innermost open element, or
// into the preamble when no article is open yet. Text dedented back to
// a shallower level closes the enumerations below it and becomes that
// element's wrap-up.
func (p *parser) appendContinuation(text string, indent float64) {
	if len(p.stack) == 0 {
		p.preamble = append(p.preamble, text)
		p.quotes += quoteDiff(text)
		if p.quotes < 0 {
			p.quotes = 0
		}
		return
	}
	if p.quotes == 0 {
		for d := 2; d < len(p.stack); d++ {
			est, ok := p.indents[d]
			if !ok || indent >= est-indentTol {
				continue
			}
			parent := p.stack[d-1]
			if len(parent.Children) == 0 {
				continue
			}
			parent.WrapUp = join(parent.WrapUp, text)
			p.quotes += quoteDiff(text)
			if p.quotes < 0 {
				p.quotes = 0
			}
			p.closeTo(d)
			return
		}
	}
	p.appendText(p.stack[len(p.stack)-1], text)
}

func (p *parser) lastArticleID() string {
	for i := len(p.act.Children) - 1; i >= 0; i-- {
		if p.act.Children[i].Kind == act.KindArticle {
			return p.act.Children[i].ID
		}
	}
	return ""
}

func (p *parser) flushPreamble() {
	if len(p.preamble) == 0 || len(p.act.Children) > 0 {
		return
	}
	p.act.AddChild(&act.Element{
		Kind: act.KindPreamble,
		Text: strings.Join(p.preamble, " "),
	})
	p.preamble = nil
}

func (p *parser) attachHeadings(articleID string) {
	for _, h := range p.pending {
		p.act.Headings = append(p.act.Headings, act.Heading{
			BeforeArticle: articleID,
			Text:          h,
		})
	}
	p.pending = nil
}

func (p *parser) establish(depth int, indent float64) {
	if _, ok := p.indents[depth]; !ok {
		p.indents[depth] = indent
	}
}

func (p *parser) indentOK(depth int, indent float64) bool {
	est, ok := p.indents[depth]
	if !ok {
		return true
	}
	return math.Abs(est-indent) <= indentTol
}

// finish flushes trailing state and audits the output invariants:
// non-empty leaves and non-empty element lists.
func (p *parser) finish() {
	p.flushPreamble()
	for _, h := range p.pending {
		p.act.Headings = append(p.act.Headings, act.Heading{Text: h})
	}
	p.pending = nil

	lastPara := -1
	p.act.Walk(func(e *act.Element) {
		if e.Kind == act.KindArticle && len(e.Children) == 0 {
			p.warnf(lastPara, "article %s has no content", e.ID)
			e.AddChild(&act.Element{Kind: act.KindParagraph})
		}
		if len(e.Children) == 0 && e.Text == "" && e.ID != "" {
			p.warnf(lastPara, "empty %s %s", e.Kind, e.ID)
		}
	})
}

func join(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}

func quoteDiff(s string) int {
	return strings.Count(s, "„") - strings.Count(s, "”")
}

// head truncates on a rune boundary so accented characters never get
// cut in half inside warning messages.
func head(s string) string {
	r := []rune(s)
	if len(r) > 12 {
		return string(r[:12])
	}
	return s
}
