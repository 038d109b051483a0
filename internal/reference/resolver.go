package reference

import (
	"fmt"
)

// Raw is an unnormalized citation fragment as captured by the phrase
// recognizer's template groups. Empty fields were omitted in the text.
type Raw struct {
	// ActText is the full act citation, e.g. "2011. évi CLXXVII.
	// törvény", or empty for "this act".
	ActText string
	// Article, Paragraph, Point and Subpoint are the captured
	// identifier tokens, already stripped of decoration.
	Article   string
	Paragraph string
	Point     string
	Subpoint  string
	// RangeEnd closes a range at the deepest captured level.
	RangeEnd string
}

// Context carries the position being scanned, for defaulting omitted
// levels: "this act", "this article", "this paragraph".
type Context struct {
	Act       ActID
	Article   string
	Paragraph string
}

// Resolve normalizes a raw citation into a fully qualified Reference.
// An omitted act defaults to the enclosing act; an omitted article to
// the enclosing article. A malformed act fragment is an error: the
// caller demotes the whole phrase back to prose.
func Resolve(raw Raw, ctx Context) (Reference, error) {
	var ref Reference

	if raw.ActText != "" {
		id, err := ParseActID(raw.ActText)
		if err != nil {
			return Reference{}, err
		}
		ref.Act = &id
	} else {
		if ctx.Act.IsZero() {
			return Reference{}, fmt.Errorf("citation omits act but context has none")
		}
		id := ctx.Act
		ref.Act = &id
	}

	article := raw.Article
	if article == "" {
		article = ctx.Article
	}
	if article == "" {
		return Reference{}, fmt.Errorf("citation omits article but context has none")
	}
	ref.Path = append(ref.Path, Step{Kind: LevelArticle, ID: article})

	switch {
	case raw.Paragraph != "":
		ref.Path = append(ref.Path, Step{Kind: LevelParagraph, ID: raw.Paragraph})
	case raw.Point != "" || raw.Subpoint != "":
		// A point cited without a paragraph lives in the enclosing
		// paragraph, when there is one.
		if raw.Article == "" && ctx.Paragraph != "" {
			ref.Path = append(ref.Path, Step{Kind: LevelParagraph, ID: ctx.Paragraph})
		}
	}

	if raw.Point != "" {
		ref.Path = append(ref.Path, Step{Kind: LevelPoint, ID: raw.Point})
	}
	if raw.Subpoint != "" {
		if raw.Point == "" {
			return Reference{}, fmt.Errorf("citation has subpoint %q without a point", raw.Subpoint)
		}
		ref.Path = append(ref.Path, Step{Kind: LevelSubpoint, ID: raw.Subpoint})
	}

	ref.RangeEnd = raw.RangeEnd
	if ref.RangeEnd != "" {
		// Reject dangling or malformed ranges up front; expansion
		// itself stays lazy.
		if _, err := ref.RangeIDs(); err != nil {
			return Reference{}, fmt.Errorf("invalid range in citation: %w", err)
		}
	}
	return ref, nil
}
