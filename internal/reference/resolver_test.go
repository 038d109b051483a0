package reference

import (
	"reflect"
	"testing"
)

var testCtx = Context{
	Act:       ActID{Year: 2011, Serial: "CLXXVII"},
	Article:   "12",
	Paragraph: "3",
}

func TestParseActID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id, err := ParseActID("2011. évi CLXXVII. törvény")
		if err != nil {
			t.Fatal(err)
		}
		if id.Year != 2011 || id.Serial != "CLXXVII" {
			t.Errorf("got %+v", id)
		}
	})

	t.Run("bad serial", func(t *testing.T) {
		if _, err := ParseActID("2011. évi XXIIII. törvény"); err == nil {
			t.Error("expected error for non-canonical serial")
		}
	})

	t.Run("not an act", func(t *testing.T) {
		if _, err := ParseActID("71/2011. Korm. rendelet"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestResolve_Defaults(t *testing.T) {
	t.Run("omitted act defaults to enclosing act", func(t *testing.T) {
		ref, err := Resolve(Raw{Article: "5", Paragraph: "2"}, testCtx)
		if err != nil {
			t.Fatal(err)
		}
		if ref.Act == nil || *ref.Act != testCtx.Act {
			t.Errorf("act not defaulted: %+v", ref.Act)
		}
	})

	t.Run("omitted article defaults to enclosing article", func(t *testing.T) {
		ref, err := Resolve(Raw{Paragraph: "4"}, testCtx)
		if err != nil {
			t.Fatal(err)
		}
		want := []Step{
			{Kind: LevelArticle, ID: "12"},
			{Kind: LevelParagraph, ID: "4"},
		}
		if !reflect.DeepEqual(ref.Path, want) {
			t.Errorf("got path %+v", ref.Path)
		}
	})

	t.Run("bare point defaults paragraph too", func(t *testing.T) {
		ref, err := Resolve(Raw{Point: "b"}, testCtx)
		if err != nil {
			t.Fatal(err)
		}
		want := []Step{
			{Kind: LevelArticle, ID: "12"},
			{Kind: LevelParagraph, ID: "3"},
			{Kind: LevelPoint, ID: "b"},
		}
		if !reflect.DeepEqual(ref.Path, want) {
			t.Errorf("got path %+v", ref.Path)
		}
	})

	t.Run("explicit act is parsed", func(t *testing.T) {
		ref, err := Resolve(Raw{ActText: "2013. évi V. törvény", Article: "8"}, testCtx)
		if err != nil {
			t.Fatal(err)
		}
		if ref.Act.Year != 2013 || ref.Act.Serial != "V" {
			t.Errorf("got act %+v", ref.Act)
		}
	})
}

func TestResolve_Malformed(t *testing.T) {
	if _, err := Resolve(Raw{ActText: "20xx. évi Q. törvény", Article: "1"}, testCtx); err == nil {
		t.Error("expected error for malformed act fragment")
	}
	if _, err := Resolve(Raw{Subpoint: "ab"}, testCtx); err == nil {
		t.Error("expected error for subpoint without point")
	}
	if _, err := Resolve(Raw{Point: "c", RangeEnd: "a"}, testCtx); err == nil {
		t.Error("expected error for reversed range")
	}
}

func TestRangeIDs_Lazy(t *testing.T) {
	// "a) to c)" covers {a,b,c} regardless of what exists in any tree.
	ref, err := Resolve(Raw{Article: "5", Paragraph: "2", Point: "a", RangeEnd: "c"}, testCtx)
	if err != nil {
		t.Fatal(err)
	}
	ids, err := ref.RangeIDs()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Errorf("got %v", ids)
	}

	t.Run("numeric range", func(t *testing.T) {
		ref, err := Resolve(Raw{Article: "5", Paragraph: "2", RangeEnd: "4"}, testCtx)
		if err != nil {
			t.Fatal(err)
		}
		ids, err := ref.RangeIDs()
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(ids, []string{"2", "3", "4"}) {
			t.Errorf("got %v", ids)
		}
	})
}
