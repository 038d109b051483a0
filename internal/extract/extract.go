// Package extract locates the downloaded issue PDF and its cached
// extraction output. Text extraction itself is done by an external
// tool that writes positioned lines as JSON next to the PDF; this
// package validates the pair and loads the lines.
package extract

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/lawtext/gazette/internal/home"
	"github.com/lawtext/gazette/internal/textline"
)

// IssueSource is one issue's on-disk input pair.
type IssueSource struct {
	Year   int
	Number int
	// PDFPath is the downloaded issue PDF; empty when only the
	// extraction output is present.
	PDFPath string
	// PDFPages is the page count of the PDF, 0 when no PDF exists.
	PDFPages int
	// LinesPath is the cached extraction output.
	LinesPath string
}

// Locate finds the input files for one issue. The extraction output is
// required; the PDF is optional but validated when present.
func Locate(h *home.Dir, year, number int) (*IssueSource, error) {
	src := &IssueSource{
		Year:      year,
		Number:    number,
		LinesPath: h.IssueLinesPath(year, number),
	}
	if _, err := os.Stat(src.LinesPath); err != nil {
		return nil, fmt.Errorf("no extraction output for issue %d/%d (expected %s): %w",
			year, number, src.LinesPath, err)
	}

	pdfPath := h.IssuePDFPath(year, number)
	if _, err := os.Stat(pdfPath); err == nil {
		pages, err := pageCount(pdfPath)
		if err != nil {
			return nil, fmt.Errorf("issue PDF %s: %w", pdfPath, err)
		}
		src.PDFPath = pdfPath
		src.PDFPages = pages
	}
	return src, nil
}

// Load reads and validates the extraction output. When the PDF is
// present, the extraction must not claim pages the PDF does not have.
func (s *IssueSource) Load() (*textline.Issue, error) {
	issue, err := textline.Load(s.LinesPath)
	if err != nil {
		return nil, err
	}
	if s.PDFPages > 0 {
		for _, p := range issue.Pages {
			if p.Number > s.PDFPages {
				return nil, fmt.Errorf("extraction page %d exceeds PDF page count %d",
					p.Number, s.PDFPages)
			}
		}
	}
	return issue, nil
}

func pageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return api.PageCount(f, nil)
}
