// Package phrase recognizes embedded legal phrases in leaf text:
// citation references and amendment/repeal instructions. Matched spans
// become structured objects; everything else stays verbatim prose.
package phrase

import (
	"fmt"

	"github.com/lawtext/gazette/internal/reference"
)

// SpanKind tags the content of one recognized span.
type SpanKind int

const (
	// SpanProse is verbatim text with no recognized phrase.
	SpanProse SpanKind = iota
	// SpanReference is a citation of a structural element.
	SpanReference
	// SpanInstruction is an amendment or repeal directive.
	SpanInstruction
)

func (k SpanKind) String() string {
	switch k {
	case SpanProse:
		return "prose"
	case SpanReference:
		return "reference"
	case SpanInstruction:
		return "instruction"
	default:
		return fmt.Sprintf("span(%d)", int(k))
	}
}

// Span is one segment of a leaf's text. Text always holds the verbatim
// source characters, so concatenating all span texts reproduces the
// original leaf text exactly.
type Span struct {
	Kind  SpanKind     `json:"kind"`
	Text  string       `json:"text"`
	Ref   *reference.Reference `json:"ref,omitempty"`
	Instr *Instruction `json:"instruction,omitempty"`
}

// Action is the edit kind of an instruction.
type Action string

const (
	ActionReplace      Action = "replace"
	ActionRepeal       Action = "repeal"
	ActionInsertBefore Action = "insert-before"
	ActionInsertAfter  Action = "insert-after"
)

// Instruction is a structured, unapplied edit directive. It is a
// terminal artifact of this pipeline: emission, not application.
type Instruction struct {
	Action Action              `json:"action"`
	Target reference.Reference `json:"target"`
	// Text is the verbatim replacement or inserted text for amendment
	// actions; empty for repeals.
	Text string `json:"text,omitempty"`
}

// JoinSpans reassembles the original text from a span sequence.
func JoinSpans(spans []Span) string {
	var out string
	for _, s := range spans {
		out += s.Text
	}
	return out
}
