package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/lawtext/gazette/internal/phrase"
	"github.com/lawtext/gazette/internal/textline"
)

// issueFixture lays out one gazette page the way extracted text looks:
// marker paragraphs start with a first-line indent, continuation lines
// sit at the margin, and structural paragraphs are separated by a
// larger baseline gap than wrapped lines.
func issueFixture() *textline.Issue {
	lines := []struct {
		y    float64
		x    float64
		text string
	}{
		{10, 15, "2011. évi C. törvény"},
		{40, 0, "a példákról*"},
		{70, 15, "1. § (1) Az első bekezdés szövege"},
		{82, 0, "több sorban folytatva,"},
		{94, 0, "és még egy sorral kiegészítve."},
		{124, 15, "(2) A 2. § szerinti szabály akkor alkalmazandó,"},
		{136, 0, "ha a feltétel teljesül,"},
		{148, 0, "és az eljárás megindult."},
		{178, 15, "2. § Ez a törvény a kihirdetését"},
		{190, 0, "követő napon lép hatályba."},
	}
	page := textline.Page{Number: 1}
	for _, l := range lines {
		page.Lines = append(page.Lines, textline.Line{
			Content: l.text,
			X:       l.x,
			Y:       l.y,
			Width:   200,
		})
	}
	return &textline.Issue{Pages: []textline.Page{page}}
}

func TestRun(t *testing.T) {
	published := time.Date(2011, time.December, 14, 0, 0, 0, 0, time.UTC)
	res, err := Run(context.Background(), issueFixture(), Options{
		Published: published,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.RunID == "" {
		t.Error("empty run id")
	}
	if len(res.Acts) != 1 {
		t.Fatalf("acts = %d (%+v)", len(res.Acts), res)
	}

	a := res.Acts[0]
	if a.ID.Year != 2011 || a.ID.Serial != "C" {
		t.Errorf("act id = %+v", a.ID)
	}
	if a.Subject != "a példákról" {
		t.Errorf("subject = %q", a.Subject)
	}
	if !a.Published.Equal(published) {
		t.Errorf("published = %v", a.Published)
	}

	art1, ok := a.Article("1")
	if !ok {
		t.Fatalf("article 1 missing, children: %+v", a.Children)
	}
	if len(art1.Children) != 2 {
		t.Fatalf("article 1 paragraphs = %d", len(art1.Children))
	}

	// The citation in (2) resolves against the enclosing act.
	par2 := art1.Children[1]
	var refs int
	for _, s := range par2.Spans {
		if s.Kind != phrase.SpanReference {
			continue
		}
		refs++
		if s.Ref.Act.Year != 2011 || s.Ref.Act.Serial != "C" {
			t.Errorf("reference act = %+v", s.Ref.Act)
		}
		deepest, ok := s.Ref.Deepest()
		if !ok || deepest.ID != "2" {
			t.Errorf("reference target = %+v", s.Ref.Path)
		}
	}
	if refs != 1 {
		t.Errorf("references in (2) = %d, spans %+v", refs, par2.Spans)
	}

	if _, ok := a.Article("2"); !ok {
		t.Error("article 2 missing")
	}

	if res.Summary.Total != 0 {
		t.Errorf("unexpected degradations: %+v", res.Summary)
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, issueFixture(), Options{})
	if err == nil {
		t.Fatal("expected context error")
	}
}
