// Package textline defines the input contract with the external PDF
// extractor: positioned text lines, grouped by page, for one gazette issue.
package textline

// Line is a single positioned text line as produced by the extractor.
// Lines are immutable once loaded.
type Line struct {
	// Content is the reassembled text of the line.
	Content string `json:"content"`
	// X is the left edge of the line in page points (the indent).
	X float64 `json:"x"`
	// Y is the baseline position in page points, measured from the page top.
	Y float64 `json:"y"`
	// Width is the rendered width of the line in page points.
	Width float64 `json:"width"`
	// Bold reports whether the dominant font of the line is bold.
	Bold bool `json:"bold,omitempty"`
}

// Page holds the lines of one PDF page in top-to-bottom order.
type Page struct {
	Number int    `json:"number"`
	Lines  []Line `json:"lines"`
}

// Issue is the full extractor payload for one gazette issue.
type Issue struct {
	Pages []Page `json:"pages"`
}

// IsEmpty reports whether the line carries no text.
func (l Line) IsEmpty() bool {
	return l.Content == ""
}
