// Package pipeline runs the full issue processing chain: line
// assembly, issue splitting, structural parsing and phrase
// recognition, with per-act work fanned out across workers.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lawtext/gazette/internal/act"
	"github.com/lawtext/gazette/internal/assemble"
	"github.com/lawtext/gazette/internal/issue"
	"github.com/lawtext/gazette/internal/metrics"
	"github.com/lawtext/gazette/internal/phrase"
	"github.com/lawtext/gazette/internal/reference"
	"github.com/lawtext/gazette/internal/structparse"
	"github.com/lawtext/gazette/internal/textline"
)

// Options configures one pipeline run. Zero values fall back to
// sensible defaults.
type Options struct {
	// Workers bounds per-act parallelism. Defaults to 4.
	Workers int
	// Published is the issue publication date stamped on every act.
	Published time.Time
	// Patterns is the phrase template library. Defaults to the
	// built-in templates.
	Patterns *phrase.Library
	// Recorder collects degradation events. Defaults to a fresh one.
	Recorder *metrics.Recorder
	Logger   *slog.Logger
}

// Result is the output of one run.
type Result struct {
	// RunID identifies the run in logs and stored output.
	RunID string
	// Acts holds the parsed acts in issue order.
	Acts []*act.Act
	// Malformed lists act titles that were dropped by the splitter.
	Malformed []string
	// Summary is the degradation counter snapshot at the end of the
	// run.
	Summary metrics.Summary
}

// Run processes one extracted issue into parsed acts.
func Run(ctx context.Context, in *textline.Issue, opts Options) (*Result, error) {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Patterns == nil {
		opts.Patterns = phrase.NewLibrary()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NewRecorder()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	runID := uuid.NewString()
	log = log.With("run_id", runID)
	rec := opts.Recorder

	paras, stats := assemble.Paragraphs(in.Pages)
	rec.Add(metrics.StageAssemble, metrics.KindFurnitureDropped, stats.FurnitureDropped)
	rec.Add(metrics.StageAssemble, metrics.KindUnclassified, stats.Unclassified)
	log.Debug("lines assembled",
		"paragraphs", len(paras),
		"furniture_dropped", stats.FurnitureDropped,
		"unclassified", stats.Unclassified)

	split := issue.Split(paras)
	rec.Add(metrics.StageSplit, metrics.KindFrontMatter, split.FrontMatter)
	rec.Add(metrics.StageSplit, metrics.KindFooterDropped, split.FooterDropped)
	for _, title := range split.Malformed {
		rec.Record(metrics.StageSplit, metrics.KindMalformedAct, title, "no body before next title")
		log.Warn("malformed act dropped", "title", title)
	}

	acts := make([]*act.Act, len(split.Acts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, raw := range split.Acts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parsed, warns := structparse.Parse(raw)
			parsed.Published = opts.Published
			for _, w := range warns {
				rec.Record(metrics.StageStructure, metrics.KindStructural, raw.Title, w.String())
			}
			demoted := annotate(parsed, opts.Patterns, rec)
			log.Info("act parsed",
				"act", raw.Title,
				"warnings", len(warns),
				"phrases_demoted", demoted)
			acts[i] = parsed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{
		RunID:     runID,
		Acts:      acts,
		Malformed: split.Malformed,
		Summary:   rec.Snapshot(),
	}, nil
}

// annotate runs phrase recognition over every element text, with the
// resolution context taken from the element's own address. Returns the
// number of demoted phrases.
func annotate(a *act.Act, lib *phrase.Library, rec *metrics.Recorder) int {
	demoted := 0
	title := a.ID.String()
	a.Walk(func(e *act.Element) {
		text := e.Text
		if !e.IsLeaf() {
			text = e.Intro
		}
		if text == "" {
			return
		}
		ctx := reference.Context{Act: a.ID}
		for _, step := range e.Path() {
			switch step.Kind {
			case reference.LevelArticle:
				ctx.Article = step.ID
			case reference.LevelParagraph:
				ctx.Paragraph = step.ID
			}
		}
		spans, warns := lib.Recognize(text, ctx)
		for _, w := range warns {
			rec.Record(metrics.StagePhrase, metrics.KindPhraseDemoted, title, w)
			demoted++
		}
		e.Spans = spans
	})
	return demoted
}
