package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lawtext/gazette/internal/config"
	"github.com/lawtext/gazette/internal/home"
	"github.com/lawtext/gazette/internal/phrase"
	"github.com/lawtext/gazette/internal/pipeline"
	"github.com/lawtext/gazette/internal/registry"
	"github.com/lawtext/gazette/internal/textline"
)

// newLogger builds the shared text logger for CLI commands.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// openHome resolves and prepares the home directory.
func openHome() (*home.Dir, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, err
	}
	return h, nil
}

// loadPatterns builds the phrase library, applying configured
// overrides when present.
func loadPatterns(cfg *config.Config) (*phrase.Library, error) {
	lib := phrase.NewLibrary()
	if cfg.Parse.PatternFile != "" {
		if err := lib.LoadOverrides(cfg.Parse.PatternFile); err != nil {
			return nil, fmt.Errorf("pattern overrides: %w", err)
		}
	}
	return lib, nil
}

// processIssue runs the pipeline over one extracted issue and persists
// the results: one JSON file per act plus a registry row for lookup.
func processIssue(ctx context.Context, h *home.Dir, cfg *config.Config,
	logger *slog.Logger, year, number int, in *textline.Issue) error {

	lib, err := loadPatterns(cfg)
	if err != nil {
		return err
	}

	res, err := pipeline.Run(ctx, in, pipeline.Options{
		Workers:  cfg.Parse.Workers,
		Patterns: lib,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	for _, a := range res.Acts {
		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return fmt.Errorf("render act %s: %w", a.ID, err)
		}
		out := h.ActOutputPath(a.ID.Year, a.ID.Serial)
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write act %s: %w", a.ID, err)
		}
	}

	store, err := registry.NewStore(h.RegistryPath())
	if err != nil {
		return err
	}
	defer store.Close()

	rec := registry.IssueRecord{
		Year:         year,
		Number:       number,
		RunID:        res.RunID,
		ProcessedAt:  time.Now(),
		ActCount:     len(res.Acts),
		Degradations: res.Summary.Total,
	}
	if err := store.PutRun(rec, res.Acts); err != nil {
		return err
	}

	logger.Info("issue processed",
		"issue", fmt.Sprintf("%d/%d", year, number),
		"acts", len(res.Acts),
		"malformed", len(res.Malformed),
		"degradations", res.Summary.Total)
	return nil
}
