package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/lawtext/gazette/internal/config"
	"github.com/lawtext/gazette/internal/home"
)

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

func TestFetcher_Issue(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// First attempt fails; the fetcher retries.
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer srv.Close()

	h := testHome(t)
	f := New(h, config.DownloadCfg{
		URLTemplate:    srv.URL + "/%d/%d.pdf",
		MaxRetries:     3,
		TimeoutSeconds: 5,
	}, nil)

	path, err := f.Issue(context.Background(), 2011, 150)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if path != h.IssuePDFPath(2011, 150) {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		t.Fatalf("downloaded file: %v", err)
	}

	// A second call is a cache hit, not a download.
	before := calls.Load()
	if _, err := f.Issue(context.Background(), 2011, 150); err != nil {
		t.Fatalf("cached Issue: %v", err)
	}
	if calls.Load() != before {
		t.Error("cached issue was re-downloaded")
	}
}

func TestFetcher_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := New(testHome(t), config.DownloadCfg{
		URLTemplate:    srv.URL + "/%d/%d.pdf",
		MaxRetries:     5,
		TimeoutSeconds: 5,
	}, nil)

	if _, err := f.Issue(context.Background(), 2011, 999); err == nil {
		t.Fatal("expected error for missing issue")
	}
	if calls.Load() != 1 {
		t.Errorf("missing issue fetched %d times, want 1", calls.Load())
	}
}
