// Package assemble reconstructs logical paragraphs from the positioned
// text lines produced by the external PDF extractor. It strips page
// furniture (running headers, footers, page numbers), rejoins hyphenated
// and wrapped lines, and tags each paragraph with a coarse classification
// for the downstream issue splitter.
package assemble

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/lawtext/gazette/internal/textline"
)

// Kind classifies an assembled paragraph.
type Kind int

const (
	// KindBody is regular flowing text.
	KindBody Kind = iota
	// KindHeading is a bold or all-caps structural heading.
	KindHeading
	// KindTableLike is text with column-like interior gaps.
	KindTableLike
	// KindUnclassified marks a line that could not be confidently
	// attached to any paragraph. It is emitted alone rather than
	// dropped: losing text silently is worse than an extra split.
	KindUnclassified
)

func (k Kind) String() string {
	switch k {
	case KindBody:
		return "body"
	case KindHeading:
		return "heading"
	case KindTableLike:
		return "table"
	case KindUnclassified:
		return "unclassified"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Paragraph is a logical block of reassembled text.
// This is the assembler's output unit, not a legal Paragraph.
type Paragraph struct {
	Text string
	Kind Kind
	// Page is the 1-indexed page the paragraph starts on.
	Page int
	// Indent is the left edge of the paragraph's first line in page points.
	Indent float64
	// GapBefore reports whether a vertical gap preceded the paragraph.
	GapBefore bool
}

// Stats counts assembler degradations for observability.
type Stats struct {
	FurnitureDropped int
	Unclassified     int
}

// pageNumberRe matches bare page-number lines.
var pageNumberRe = regexp.MustCompile(`^[0-9]{1,6}$`)

// interiorGapRe detects column-like runs of whitespace inside a line.
var interiorGapRe = regexp.MustCompile(`\S\s{3,}\S`)

// Paragraphs assembles the pages of one gazette issue into paragraphs.
func Paragraphs(pages []textline.Page) ([]Paragraph, Stats) {
	var stats Stats
	furniture := detectFurniture(pages)

	var out []Paragraph
	var open *Paragraph
	var prevLine *textline.Line

	flush := func() {
		if open != nil {
			out = append(out, *open)
			open = nil
		}
	}

	for _, page := range pages {
		tol := gapTolerance(page.Lines)
		prevLine = nil // baselines reset at the page break

		for i := range page.Lines {
			line := page.Lines[i]
			if line.IsEmpty() {
				continue
			}
			if furniture[furnitureKey(line)] || pageNumberRe.MatchString(strings.TrimSpace(line.Content)) {
				stats.FurnitureDropped++
				continue
			}

			gap := math.Inf(1)
			if prevLine != nil {
				gap = line.Y - prevLine.Y
			}
			gapBefore := gap > tol

			switch {
			case open == nil:
				open = newParagraph(line, page.Number, prevLine == nil || gapBefore)
			case prevLine == nil && crossesPageBreak(open, line):
				appendLine(open, line)
			case continues(open, prevLine, line, gap, tol):
				appendLine(open, line)
			case gap < 0:
				// Negative baseline step inside a page: extraction
				// noise we cannot place. Emit standalone.
				flush()
				p := newParagraph(line, page.Number, false)
				p.Kind = KindUnclassified
				out = append(out, *p)
				stats.Unclassified++
				prevLine = &page.Lines[i]
				continue
			default:
				flush()
				open = newParagraph(line, page.Number, gapBefore)
			}
			prevLine = &page.Lines[i]
		}
	}
	flush()
	return out, stats
}

// newParagraph opens a paragraph with a single line.
func newParagraph(line textline.Line, pageNum int, gapBefore bool) *Paragraph {
	p := &Paragraph{
		Text:      strings.TrimSpace(line.Content),
		Page:      pageNum,
		Indent:    line.X,
		GapBefore: gapBefore,
	}
	p.Kind = classify(line, p.Text)
	return p
}

// continues reports whether line extends the open paragraph.
// A continuation sits within the line-height tolerance of the previous
// line and does not start further right than the paragraph's established
// left margin (a rightward jump is a fresh first-line indent).
func continues(p *Paragraph, prev *textline.Line, line textline.Line, gap, tol float64) bool {
	if prev == nil || gap <= 0 || gap > tol {
		return false
	}
	if p.Kind == KindHeading && !line.Bold && classify(line, line.Content) != KindHeading {
		return false
	}
	return line.X <= p.Indent+indentSlack
}

// indentSlack absorbs sub-point jitter in the left margin.
const indentSlack = 6.0

// crossesPageBreak reports whether the first content line of a page
// continues the paragraph left open on the previous page. The baseline
// gap is meaningless across pages, so only the text shape decides:
// a hyphenated word or a lowercase start at the paragraph's margin.
func crossesPageBreak(p *Paragraph, line textline.Line) bool {
	if p.Kind != KindBody {
		return false
	}
	next := strings.TrimSpace(line.Content)
	if next == "" || line.X > p.Indent+indentSlack {
		return false
	}
	return strings.HasSuffix(p.Text, "-") || startsLower(next)
}

// appendLine merges a continuation line into the paragraph,
// rejoining hyphenated line-final tokens.
func appendLine(p *Paragraph, line textline.Line) {
	next := strings.TrimSpace(line.Content)
	if next == "" {
		return
	}
	if strings.HasSuffix(p.Text, "-") && startsLower(next) {
		p.Text = strings.TrimSuffix(p.Text, "-") + next
		return
	}
	p.Text = p.Text + " " + next
	if line.X < p.Indent {
		p.Indent = line.X
	}
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}

// classify tags a fresh paragraph from its first line.
func classify(line textline.Line, text string) Kind {
	if interiorGapRe.MatchString(line.Content) {
		return KindTableLike
	}
	if line.Bold || isUpperText(text) {
		return KindHeading
	}
	return KindBody
}

// isUpperText reports whether the text is all-caps (ignoring digits and
// punctuation), the convention for chapter and part headings.
func isUpperText(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter && len([]rune(s)) >= 3
}

// gapTolerance derives the page-local continuation threshold from the
// median baseline step, so the assembler adapts to each page's leading.
func gapTolerance(lines []textline.Line) float64 {
	var gaps []float64
	for i := 1; i < len(lines); i++ {
		g := lines[i].Y - lines[i-1].Y
		if g > 0 {
			gaps = append(gaps, g)
		}
	}
	if len(gaps) == 0 {
		return 18.0
	}
	sort.Float64s(gaps)
	// Lower median: body-line leading dominates, and leaning small
	// splits rather than merges on sparse pages.
	median := gaps[(len(gaps)-1)/2]
	return median * 1.6
}

// furnitureKey identifies a line by its rounded position and content,
// page-independent, for repeated header/footer detection.
func furnitureKey(line textline.Line) string {
	return fmt.Sprintf("%.0f|%s", line.Y, normalizeFurniture(line.Content))
}

// normalizeFurniture folds digits so "page 12" and "page 13" collide.
func normalizeFurniture(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return '#'
		}
		return r
	}, strings.TrimSpace(s))
}

// detectFurniture finds lines repeated across pages at the same position.
// Anything appearing on more than half the pages (minimum three) is page
// furniture: running headers, footers and page numbers.
func detectFurniture(pages []textline.Page) map[string]bool {
	if len(pages) < 3 {
		return nil
	}
	counts := make(map[string]int)
	for _, page := range pages {
		seen := make(map[string]bool)
		for _, line := range page.Lines {
			key := furnitureKey(line)
			if !seen[key] {
				seen[key] = true
				counts[key]++
			}
		}
	}
	threshold := len(pages) / 2
	if threshold < 3 {
		threshold = 3
	}
	furniture := make(map[string]bool)
	for key, n := range counts {
		if n > threshold {
			furniture[key] = true
		}
	}
	return furniture
}
