package phrase

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/lawtext/gazette/internal/reference"
)

// danglingRangeRe matches a range opening right after a citation that
// is never closed by another identifier, e.g. "a)– pontja" cut off by
// extraction noise. A well-formed range would have been consumed by the
// citation pattern itself, so an identifier followed by a dash here is
// dangling by construction.
var danglingRangeRe = regexp.MustCompile(`^\s*(?:[a-z]{1,2}\)|[0-9]+\.)\s*[–-]`)

// candidate is one template match inside the scanned text.
type candidate struct {
	start, end int
	tpl        *template
	groups     map[string]string
}

// Recognize splits text into spans. Matching is left-to-right,
// longest-match-first, non-overlapping; unmatched text stays prose.
// Every degradation (malformed citation, dangling range) is returned
// as a warning, never silently dropped: the original characters always
// survive in a prose span.
func (l *Library) Recognize(text string, ctx reference.Context) ([]Span, []string) {
	cands := l.collect(text)

	var spans []Span
	var warnings []string
	pos := 0

	appendProse := func(upto int) {
		if upto > pos {
			spans = append(spans, Span{Kind: SpanProse, Text: text[pos:upto]})
			pos = upto
		}
	}

	for _, c := range cands {
		if c.start < pos {
			continue // overlaps an already accepted match
		}
		if danglingRangeRe.MatchString(text[c.end:]) {
			warnings = append(warnings, fmt.Sprintf(
				"dangling range after %q, span left as prose", text[c.start:c.end]))
			continue
		}
		span, err := c.buildSpan(text, ctx)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf(
				"phrase %q demoted to prose: %v", text[c.start:c.end], err))
			continue
		}
		appendProse(c.start)
		spans = append(spans, span)
		pos = c.end
	}
	appendProse(len(text))
	return spans, warnings
}

// collect gathers all template matches outside quoted regions, ordered
// for greedy selection: by start position, then by descending length,
// then by template precedence.
func (l *Library) collect(text string) []candidate {
	quoted := quotedRegions(text)
	var cands []candidate
	for ti := range l.templates {
		tpl := &l.templates[ti]
		for _, m := range tpl.re.FindAllStringSubmatchIndex(text, -1) {
			if insideAny(quoted, m[0]) {
				continue
			}
			groups := make(map[string]string)
			for gi, name := range tpl.re.SubexpNames() {
				if name == "" || m[2*gi] < 0 {
					continue
				}
				groups[name] = text[m[2*gi]:m[2*gi+1]]
			}
			if groups["article"] == "" {
				// A citation needs at least an article; optional-only
				// matches are regex artifacts.
				continue
			}
			cands = append(cands, candidate{start: m[0], end: m[1], tpl: tpl, groups: groups})
		}
	}
	order := func(c candidate) int {
		for i := range l.templates {
			if c.tpl == &l.templates[i] {
				return i
			}
		}
		return len(l.templates)
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].start != cands[j].start {
			return cands[i].start < cands[j].start
		}
		if cands[i].end != cands[j].end {
			return cands[i].end > cands[j].end
		}
		return order(cands[i]) < order(cands[j])
	})
	return cands
}

// buildSpan normalizes the captured groups into a structured span.
func (c candidate) buildSpan(text string, ctx reference.Context) (Span, error) {
	raw := reference.Raw{
		ActText:   c.groups["act"],
		Article:   c.groups["article"],
		Paragraph: c.groups["paragraph"],
		Subpoint:  c.groups["subpoint"],
	}
	if raw.Point = c.groups["point"]; raw.Point == "" {
		raw.Point = c.groups["point_num"]
	}
	switch {
	case c.groups["range_end"] != "":
		raw.RangeEnd = c.groups["range_end"]
	case c.groups["range_end_num"] != "":
		raw.RangeEnd = c.groups["range_end_num"]
	case c.groups["par_end"] != "" && raw.Point == "" && raw.Subpoint == "":
		raw.RangeEnd = c.groups["par_end"]
	}

	ref, err := reference.Resolve(raw, ctx)
	if err != nil {
		return Span{}, err
	}

	span := Span{Kind: c.tpl.kind, Text: text[c.start:c.end]}
	switch c.tpl.kind {
	case SpanReference:
		span.Ref = &ref
	case SpanInstruction:
		span.Instr = &Instruction{
			Action: c.tpl.action,
			Target: ref,
			Text:   c.groups["payload"],
		}
	}
	return span, nil
}

// quotedRegions returns the [start,end) byte ranges of „…” blocks.
// Text inside quotes is amendment payload, never live phrases.
func quotedRegions(text string) [][2]int {
	var regions [][2]int
	open := -1
	for i, r := range text {
		switch r {
		case '„':
			if open < 0 {
				open = i
			}
		case '”':
			if open >= 0 {
				regions = append(regions, [2]int{open, i + len("”")})
				open = -1
			}
		}
	}
	if open >= 0 {
		regions = append(regions, [2]int{open, len(text)})
	}
	return regions
}

func insideAny(regions [][2]int, pos int) bool {
	for _, r := range regions {
		if pos >= r[0] && pos < r[1] {
			return true
		}
	}
	return false
}
