// Package issue slices the assembled paragraphs of one gazette issue
// into raw act bodies: title, subject and body text per act, with
// front matter discarded and malformed acts reported but never fatal.
package issue

import (
	"regexp"
	"strings"

	"github.com/lawtext/gazette/internal/assemble"
	"github.com/lawtext/gazette/internal/reference"
)

// titleRe matches an act title paragraph, e.g.
// "2011. évi CLXXVII. törvény".
var titleRe = regexp.MustCompile(`^([12][0-9]{3})\. évi ([IVXLCDM]+)\. törvény\b`)

// The signature block that closes an act body is a line of names
// ending in "s. k.," followed by a line with only the office titles:
//
//	Dr. Schmitt Pál s. k.,     Dr. Kövér László s. k.,
//	köztársasági elnök     az Országgyűlés elnöke
//
// The assembler may merge the two lines into one paragraph or keep
// them apart; both shapes are anchored so a body sentence that merely
// mentions either office is never mistaken for the footer.
var (
	signatureRe   = regexp.MustCompile(`s\. k\.,$`)
	officeTitleRe = regexp.MustCompile(`^köztársasági elnök\s+az Országgyűlés (al)?elnöke$`)
	footerRe      = regexp.MustCompile(`s\. k\.,\s+köztársasági elnök\s+az Országgyűlés (al)?elnöke$`)
)

// asteriskNoteRe matches the enactment footnote referenced from the
// subject line's trailing asterisk.
var asteriskNoteRe = regexp.MustCompile(`^\* ?A törvényt az Országgyűlés`)

// RawAct is one act's unparsed slice of the issue.
type RawAct struct {
	ID reference.ActID
	// Title is the matched citation-form title,
	// e.g. "2011. évi CLXXVII. törvény".
	Title string
	// Subject is the descriptive line after the title, with its
	// asterisk footnote marker stripped.
	Subject string
	Body    []assemble.Paragraph
}

// Result is the output of one split, including everything that was
// degraded on the way. Degradations are counted, never silent.
type Result struct {
	Acts []RawAct
	// Malformed lists act titles that had no body before the next
	// title. They are excluded from Acts.
	Malformed []string
	// FrontMatter is the number of paragraphs outside any act body:
	// table of contents and other issue matter before the first title,
	// plus anything between a signature footer and the next title.
	FrontMatter int
	// FooterDropped counts the signature-block paragraphs that
	// terminated act bodies.
	FooterDropped int
}

// Split scans the paragraph sequence for act titles and slices the
// issue into per-act bodies.
func Split(paras []assemble.Paragraph) Result {
	var res Result
	var open *RawAct
	var pendingSig *assemble.Paragraph
	subjectPending := false

	// settle returns a held signature-candidate paragraph to the body;
	// it turned out not to open a footer block.
	settle := func() {
		if pendingSig != nil && open != nil {
			open.Body = append(open.Body, *pendingSig)
		}
		pendingSig = nil
	}

	flush := func() {
		settle()
		if open == nil {
			return
		}
		if len(open.Body) == 0 {
			res.Malformed = append(res.Malformed, open.Title)
		} else {
			res.Acts = append(res.Acts, *open)
		}
		open = nil
	}

	for _, p := range paras {
		if m := titleRe.FindStringSubmatch(p.Text); m != nil {
			id, err := reference.ParseActID(m[0])
			if err != nil {
				// A title-looking paragraph with a non-canonical
				// serial is body text, not a new act.
				if open != nil {
					settle()
					open.Body = append(open.Body, p)
				} else {
					res.FrontMatter++
				}
				continue
			}
			flush()
			open = &RawAct{ID: id, Title: m[0]}
			subjectPending = true
			// Subject text merged into the title paragraph.
			if rest := strings.TrimSpace(p.Text[len(m[0]):]); rest != "" {
				open.Subject = rest
				subjectPending = false
			}
			continue
		}

		if open == nil {
			res.FrontMatter++
			continue
		}

		text := strings.TrimSpace(p.Text)
		switch {
		case subjectPending:
			// The subject line carries a trailing asterisk pointing
			// at the enactment footnote.
			open.Subject = strings.TrimSuffix(text, "*")
			open.Subject = strings.TrimSpace(open.Subject)
			subjectPending = false
		case pendingSig != nil && officeTitleRe.MatchString(text):
			// Signature line plus office-title line: the footer
			// terminates the act body.
			pendingSig = nil
			res.FooterDropped += 2
			flush()
		case footerRe.MatchString(text):
			// The assembler merged the footer into one paragraph.
			settle()
			res.FooterDropped++
			flush()
		case signatureRe.MatchString(text):
			// Held until the next paragraph confirms the footer shape.
			settle()
			keep := p
			pendingSig = &keep
		case asteriskNoteRe.MatchString(text):
			// Enactment footnote; not part of the act body.
			settle()
		default:
			settle()
			open.Body = append(open.Body, p)
		}
	}
	flush()
	return res
}
