package registry

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/lawtext/gazette/internal/act"
	"github.com/lawtext/gazette/internal/reference"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "registry.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleAct(serial string) *act.Act {
	a := &act.Act{
		ID:        reference.ActID{Year: 2011, Serial: serial},
		Subject:   "a példákról",
		Published: time.Date(2011, 12, 14, 0, 0, 0, 0, time.UTC),
	}
	art := &act.Element{Kind: act.KindArticle, ID: "1"}
	art.AddChild(&act.Element{Kind: act.KindParagraph, Text: "Szöveg."})
	a.AddChild(art)
	return a
}

func TestStore_PutAndGet(t *testing.T) {
	s := testStore(t)
	rec := IssueRecord{
		Year: 2011, Number: 150,
		RunID:       "run-1",
		ProcessedAt: time.Now(),
		ActCount:    2,
	}
	if err := s.PutRun(rec, []*act.Act{sampleAct("C"), sampleAct("CI")}); err != nil {
		t.Fatalf("PutRun: %v", err)
	}

	got, err := s.GetAct(reference.ActID{Year: 2011, Serial: "C"})
	if err != nil {
		t.Fatalf("GetAct: %v", err)
	}
	if got.Subject != "a példákról" {
		t.Errorf("subject = %q", got.Subject)
	}
	if got.Issue != [2]int{2011, 150} {
		t.Errorf("issue = %v", got.Issue)
	}
	var body struct {
		Serial   string            `json:"serial"`
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(got.Body, &body); err != nil {
		t.Fatalf("stored body is not valid JSON: %v", err)
	}
	if body.Serial != "C" || len(body.Children) != 1 {
		t.Errorf("stored body = %s", got.Body)
	}

	if _, err := s.GetAct(reference.ActID{Year: 1999, Serial: "X"}); err == nil {
		t.Error("expected error for unknown act")
	}
}

func TestStore_ActsOfIssueAndRerun(t *testing.T) {
	s := testStore(t)
	rec := IssueRecord{Year: 2011, Number: 150, RunID: "run-1", ProcessedAt: time.Now(), ActCount: 1}
	if err := s.PutRun(rec, []*act.Act{sampleAct("C")}); err != nil {
		t.Fatalf("PutRun: %v", err)
	}

	// A rerun of the same issue replaces, it does not duplicate.
	rec.RunID = "run-2"
	if err := s.PutRun(rec, []*act.Act{sampleAct("C")}); err != nil {
		t.Fatalf("rerun PutRun: %v", err)
	}

	acts, err := s.ActsOfIssue(2011, 150)
	if err != nil {
		t.Fatalf("ActsOfIssue: %v", err)
	}
	if len(acts) != 1 {
		t.Fatalf("acts = %d", len(acts))
	}

	issues, err := s.Issues()
	if err != nil {
		t.Fatalf("Issues: %v", err)
	}
	if len(issues) != 1 || issues[0].RunID != "run-2" {
		t.Errorf("issues = %+v", issues)
	}
}
