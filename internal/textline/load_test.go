package textline

import (
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		payload := `{
			"pages": [
				{"number": 2, "lines": [{"content": "second", "x": 70, "y": 100}]},
				{"number": 1, "lines": [
					{"content": "lower", "x": 70, "y": 500},
					{"content": "upper", "x": 70, "y": 100, "width": 50, "bold": true}
				]}
			]
		}`
		issue, err := Decode([]byte(payload))
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if len(issue.Pages) != 2 {
			t.Fatalf("expected 2 pages, got %d", len(issue.Pages))
		}
		if issue.Pages[0].Number != 1 {
			t.Errorf("pages not sorted: first page is %d", issue.Pages[0].Number)
		}
		if issue.Pages[0].Lines[0].Content != "upper" {
			t.Errorf("lines not sorted top-first: got %q", issue.Pages[0].Lines[0].Content)
		}
		if !issue.Pages[0].Lines[0].Bold {
			t.Error("expected bold flag to survive decoding")
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		payload := `{"pages": [{"number": 1, "lines": [{"content": "no position"}]}]}`
		if _, err := Decode([]byte(payload)); err == nil {
			t.Fatal("expected schema validation error")
		} else if !strings.Contains(err.Error(), "schema") {
			t.Errorf("expected schema error, got: %v", err)
		}
	})

	t.Run("not json", func(t *testing.T) {
		if _, err := Decode([]byte("%PDF-1.4")); err == nil {
			t.Fatal("expected JSON error")
		}
	})
}
