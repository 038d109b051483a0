package phrase

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Citation pattern fragments. Suffix letters ([\p{L}]*) absorb the
// Hungarian case endings ("bekezdése", "pontjának", "§-ával", ...).
const (
	actPat = `(?:az? (?P<act>[12][0-9]{3}\. évi [IVXLCDM]+\. törvény)\s+)?`

	articlePat = `(?P<article>[0-9]+(?:/[A-Z])?)\. ?§(?:-[\p{L}]+)?`

	paragraphPat = `(?:\s*\((?P<paragraph>[0-9]+[a-z]?)\)` +
		`(?:\s*[–-]\s*\((?P<par_end>[0-9]+[a-z]?)\))?` +
		`\s+bekezdés[\p{L}]*)?`

	pointPat = `(?:\s*(?:(?P<point>[a-z]{1,2})\)|(?P<point_num>[0-9]+)\.)` +
		`(?:\s*[–-]\s*(?:(?P<range_end>[a-z]{1,2})\)|(?P<range_end_num>[0-9]+)\.))?` +
		`\s+pont[\p{L}]*)?`

	subpointPat = `(?:\s*(?P<subpoint>[a-z]{1,3})\)\s+alpont[\p{L}]*)?`

	citationPat = actPat + articlePat + paragraphPat + pointPat + subpointPat

	payloadPat = `(?:\s*„(?P<payload>[^”]*)”)?`
)

// template is one phrase pattern plus the span it produces.
type template struct {
	name   string
	kind   SpanKind
	action Action
	re     *regexp.Regexp
}

// Library is the read-only phrase template table. It is built once at
// startup and passed explicitly into recognition, never held as global
// mutable state.
type Library struct {
	templates []template
}

// NewLibrary builds the built-in template table.
func NewLibrary() *Library {
	lib := &Library{}
	add := func(name string, kind SpanKind, action Action, pattern string) {
		lib.templates = append(lib.templates, template{
			name:   name,
			kind:   kind,
			action: action,
			re:     regexp.MustCompile(pattern),
		})
	}

	// Amendment and repeal templates come first so they win ties
	// against the bare citation they contain.
	add("replace", SpanInstruction, ActionReplace,
		citationPat+`\s+helyébe a következő rendelkezés(?:ek)? lép(?:nek)?:`+payloadPat)
	add("insert", SpanInstruction, ActionInsertAfter,
		citationPat+`\s+a következő[^:„”]{0,100}egészül ki:`+payloadPat)
	add("repeal-postfix", SpanInstruction, ActionRepeal,
		citationPat+`\s+hatályát veszti`)
	add("repeal-prefix", SpanInstruction, ActionRepeal,
		`[Hh]atályát veszti `+citationPat)
	add("citation", SpanReference, "", citationPat)

	return lib
}

// overrideFile is the YAML schema for extending the template table with
// corpus-specific patterns without recompiling.
type overrideFile struct {
	Templates []struct {
		Name    string `yaml:"name"`
		Kind    string `yaml:"kind"`   // "citation", "replace", "repeal", "insert-before", "insert-after"
		Pattern string `yaml:"pattern"`
	} `yaml:"templates"`
}

// LoadOverrides appends templates from a YAML pattern file. Override
// patterns use the same named groups as the built-ins (act, article,
// paragraph, point, subpoint, range_end, payload).
func (l *Library) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read pattern file: %w", err)
	}
	var of overrideFile
	if err := yaml.Unmarshal(data, &of); err != nil {
		return fmt.Errorf("failed to parse pattern file: %w", err)
	}

	for _, tpl := range of.Templates {
		re, err := regexp.Compile(tpl.Pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", tpl.Name, err)
		}
		t := template{name: tpl.Name, re: re}
		switch tpl.Kind {
		case "citation":
			t.kind = SpanReference
		case "replace":
			t.kind, t.action = SpanInstruction, ActionReplace
		case "repeal":
			t.kind, t.action = SpanInstruction, ActionRepeal
		case "insert-before":
			t.kind, t.action = SpanInstruction, ActionInsertBefore
		case "insert-after":
			t.kind, t.action = SpanInstruction, ActionInsertAfter
		default:
			return fmt.Errorf("pattern %q has unknown kind %q", tpl.Name, tpl.Kind)
		}
		// Overrides are matched ahead of the built-in citation template.
		l.templates = append(l.templates[:len(l.templates)-1],
			t, l.templates[len(l.templates)-1])
	}
	return nil
}
