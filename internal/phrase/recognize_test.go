package phrase

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lawtext/gazette/internal/reference"
)

var testCtx = reference.Context{
	Act:     reference.ActID{Year: 2011, Serial: "CLXXVII"},
	Article: "20",
}

func spansOfKind(spans []Span, kind SpanKind) []Span {
	var out []Span
	for _, s := range spans {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

func TestRecognize_ReplaceInstruction(t *testing.T) {
	text := `az 5. § (2) bekezdés a) pontja helyébe a következő rendelkezés lép: „Új szöveg.”`
	spans, warnings := NewLibrary().Recognize(text, testCtx)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	instrs := spansOfKind(spans, SpanInstruction)
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction span, got %d (%+v)", len(instrs), spans)
	}
	instr := instrs[0].Instr
	if instr.Action != ActionReplace {
		t.Errorf("expected replace, got %s", instr.Action)
	}
	if instr.Text != "Új szöveg." {
		t.Errorf("payload = %q", instr.Text)
	}

	target := instr.Target
	if target.Act == nil || *target.Act != testCtx.Act {
		t.Errorf("target act = %+v, want enclosing act", target.Act)
	}
	wantPath := []reference.Step{
		{Kind: reference.LevelArticle, ID: "5"},
		{Kind: reference.LevelParagraph, ID: "2"},
		{Kind: reference.LevelPoint, ID: "a"},
	}
	if !reflect.DeepEqual(target.Path, wantPath) {
		t.Errorf("target path = %+v", target.Path)
	}
}

func TestRecognize_CharacterConservation(t *testing.T) {
	texts := []string{
		`az 5. § (2) bekezdés a) pontja helyébe a következő rendelkezés lép: „Új szöveg.”`,
		`Az eljárásra a 2013. évi V. törvény 8. § (1) bekezdése az irányadó, továbbá a 12. § is.`,
		`Semmilyen hivatkozást nem tartalmazó mondat.`,
		`Hatályát veszti a 2012. évi C. törvény 10. §-a.`,
	}
	lib := NewLibrary()
	for _, text := range texts {
		spans, _ := lib.Recognize(text, testCtx)
		if got := JoinSpans(spans); got != text {
			t.Errorf("characters not conserved:\n in: %q\nout: %q", text, got)
		}
	}
}

func TestRecognize_CitationRange(t *testing.T) {
	text := `Az 5. § (2) bekezdés a)–c) pontjaiban foglaltak szerint.`
	spans, warnings := NewLibrary().Recognize(text, testCtx)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	refs := spansOfKind(spans, SpanReference)
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference span, got %d", len(refs))
	}
	ids, err := refs[0].Ref.RangeIDs()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Errorf("range = %v", ids)
	}
}

func TestRecognize_ExternalAct(t *testing.T) {
	text := `a 2013. évi V. törvény 8. § (1) bekezdése szerint`
	spans, _ := NewLibrary().Recognize(text, testCtx)
	refs := spansOfKind(spans, SpanReference)
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %+v", spans)
	}
	if refs[0].Ref.Act.Year != 2013 || refs[0].Ref.Act.Serial != "V" {
		t.Errorf("act = %+v", refs[0].Ref.Act)
	}
}

func TestRecognize_Repeal(t *testing.T) {
	text := `Hatályát veszti a 2012. évi C. törvény 10. §-a.`
	spans, _ := NewLibrary().Recognize(text, testCtx)
	instrs := spansOfKind(spans, SpanInstruction)
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, got %+v", spans)
	}
	if instrs[0].Instr.Action != ActionRepeal {
		t.Errorf("action = %s", instrs[0].Instr.Action)
	}
	if instrs[0].Instr.Target.Act.Serial != "C" {
		t.Errorf("target act = %+v", instrs[0].Instr.Target.Act)
	}
}

func TestRecognize_Insert(t *testing.T) {
	text := `A 12. §-a a következő (3) bekezdéssel egészül ki: „(3) Új bekezdés.”`
	spans, _ := NewLibrary().Recognize(text, testCtx)
	instrs := spansOfKind(spans, SpanInstruction)
	if len(instrs) != 1 {
		t.Fatalf("expected 1 instruction, got %+v", spans)
	}
	if instrs[0].Instr.Action != ActionInsertAfter {
		t.Errorf("action = %s", instrs[0].Instr.Action)
	}
	if instrs[0].Instr.Text != "(3) Új bekezdés." {
		t.Errorf("payload = %q", instrs[0].Instr.Text)
	}
}

func TestRecognize_MalformedActDemoted(t *testing.T) {
	text := `a 2012. évi IIII. törvény 5. §-a szerint`
	spans, warnings := NewLibrary().Recognize(text, testCtx)
	if len(warnings) == 0 {
		t.Fatal("expected a demotion warning")
	}
	if len(spans) != 1 || spans[0].Kind != SpanProse || spans[0].Text != text {
		t.Errorf("expected whole text preserved as prose, got %+v", spans)
	}
}

func TestRecognize_DanglingRange(t *testing.T) {
	text := `Az 5. § (2) bekezdés a)– pontja szerint`
	spans, warnings := NewLibrary().Recognize(text, testCtx)
	if len(warnings) != 1 {
		t.Fatalf("expected 1 dangling-range warning, got %v", warnings)
	}
	if len(spansOfKind(spans, SpanReference)) != 0 {
		t.Errorf("dangling range should stay prose, got %+v", spans)
	}
	if JoinSpans(spans) != text {
		t.Error("characters not conserved")
	}
}

func TestRecognize_QuotedTextSkipped(t *testing.T) {
	text := `A rendelkezés szövege: „a 7. § szerint kell eljárni.” Lásd még a 9. §-t.`
	spans, _ := NewLibrary().Recognize(text, testCtx)
	refs := spansOfKind(spans, SpanReference)
	if len(refs) != 1 {
		t.Fatalf("expected only the citation outside quotes, got %+v", refs)
	}
	if refs[0].Ref.Path[0].ID != "9" {
		t.Errorf("wrong citation recognized: %+v", refs[0].Ref)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	content := `templates:
  - name: not-entering-force
    kind: repeal
    pattern: 'nem lép hatályba a (?P<article>[0-9]+)\. §'
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lib := NewLibrary()
	if err := lib.LoadOverrides(path); err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}

	spans, _ := lib.Recognize("E törvény kihirdetésekor nem lép hatályba a 30. § rendelkezése.", testCtx)
	instrs := spansOfKind(spans, SpanInstruction)
	if len(instrs) != 1 || instrs[0].Instr.Action != ActionRepeal {
		t.Fatalf("override template not applied: %+v", spans)
	}
}
