package extract

import (
	"os"
	"strings"
	"testing"

	"github.com/lawtext/gazette/internal/home"
)

const linesPayload = `{
	"pages": [
		{"number": 1, "lines": [
			{"content": "2011. évi C. törvény", "x": 15, "y": 10},
			{"content": "a példákról", "x": 0, "y": 40}
		]}
	]
}`

func testHome(t *testing.T) *home.Dir {
	t.Helper()
	h, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New: %v", err)
	}
	if err := h.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists: %v", err)
	}
	return h
}

func TestLocateAndLoad(t *testing.T) {
	h := testHome(t)
	if err := os.WriteFile(h.IssueLinesPath(2011, 150), []byte(linesPayload), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Locate(h, 2011, 150)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if src.PDFPath != "" || src.PDFPages != 0 {
		t.Errorf("unexpected PDF fields: %+v", src)
	}

	issue, err := src.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(issue.Pages) != 1 || len(issue.Pages[0].Lines) != 2 {
		t.Errorf("issue = %+v", issue)
	}
}

func TestLocate_MissingExtraction(t *testing.T) {
	h := testHome(t)
	_, err := Locate(h, 2011, 151)
	if err == nil {
		t.Fatal("expected error for missing extraction output")
	}
	if !strings.Contains(err.Error(), "no extraction output") {
		t.Errorf("error = %v", err)
	}
}

func TestLoad_PageCountMismatch(t *testing.T) {
	h := testHome(t)
	if err := os.WriteFile(h.IssueLinesPath(2011, 150), []byte(linesPayload), 0o644); err != nil {
		t.Fatal(err)
	}
	payload := strings.Replace(linesPayload, `"number": 1`, `"number": 3`, 1)
	if err := os.WriteFile(h.IssueLinesPath(2011, 151), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	src := &IssueSource{
		Year: 2011, Number: 151,
		LinesPath: h.IssueLinesPath(2011, 151),
		PDFPages:  2,
	}
	if _, err := src.Load(); err == nil {
		t.Fatal("expected error for extraction pages beyond the PDF")
	}

	// Without a PDF the check is skipped.
	src.PDFPages = 0
	if _, err := src.Load(); err != nil {
		t.Fatalf("Load without PDF: %v", err)
	}
}
