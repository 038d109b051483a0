// Package fetch downloads gazette issue PDFs into the home directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/lawtext/gazette/internal/config"
	"github.com/lawtext/gazette/internal/home"
)

// Fetcher downloads issues with retries.
type Fetcher struct {
	home   *home.Dir
	cfg    config.DownloadCfg
	client *http.Client
	logger *slog.Logger
}

// New creates a fetcher from the download configuration.
func New(h *home.Dir, cfg config.DownloadCfg, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		home:   h,
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		logger: logger,
	}
}

// Issue downloads one issue PDF and returns its path on disk. An
// already downloaded issue is not fetched again.
func (f *Fetcher) Issue(ctx context.Context, year, number int) (string, error) {
	dest := f.home.IssuePDFPath(year, number)
	if _, err := os.Stat(dest); err == nil {
		f.logger.Debug("issue already downloaded", "path", dest)
		return dest, nil
	}

	url := fmt.Sprintf(f.cfg.URLTemplate, year, number)
	f.logger.Info("downloading issue", "year", year, "number", number, "url", url)

	err := retry.Do(
		func() error {
			return f.download(ctx, url, dest)
		},
		retry.Context(ctx),
		retry.Attempts(uint(f.cfg.MaxRetries)),
		retry.Delay(2*time.Second),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Warn("download failed, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	return dest, nil
}

func (f *Fetcher) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		// No such issue; retrying will not help.
		return retry.Unrecoverable(fmt.Errorf("issue not found (status %d)", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(f.home.IssuesPath(), "download-*.pdf")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
