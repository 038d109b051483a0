package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/lawtext/gazette/internal/act"
	"github.com/lawtext/gazette/internal/api"
	"github.com/lawtext/gazette/internal/reference"
	"github.com/lawtext/gazette/internal/registry"
	"github.com/lawtext/gazette/internal/server/endpoints"
)

func seededStore(t *testing.T) *registry.Store {
	t.Helper()
	store, err := registry.NewStore(filepath.Join(t.TempDir(), "registry.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	a := &act.Act{
		ID:      reference.ActID{Year: 2011, Serial: "C"},
		Subject: "a példákról",
	}
	art := &act.Element{Kind: act.KindArticle, ID: "1"}
	art.AddChild(&act.Element{Kind: act.KindParagraph, Text: "Szöveg."})
	a.AddChild(art)

	rec := registry.IssueRecord{
		Year: 2011, Number: 150,
		RunID:       "run-1",
		ProcessedAt: time.Now(),
		ActCount:    1,
	}
	if err := store.PutRun(rec, []*act.Act{a}); err != nil {
		t.Fatalf("PutRun: %v", err)
	}
	return store
}

func TestEndpoints(t *testing.T) {
	reg := api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{Store: seededStore(t)}) {
		reg.Register(ep)
	}
	mux := http.NewServeMux()
	reg.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := api.NewClient(srv.URL)
	ctx := context.Background()

	t.Run("health", func(t *testing.T) {
		var resp endpoints.HealthResponse
		if err := client.Get(ctx, "/health", &resp); err != nil {
			t.Fatalf("health: %v", err)
		}
		if resp.Status != "ok" {
			t.Errorf("status = %q", resp.Status)
		}
	})

	t.Run("issues", func(t *testing.T) {
		var issues []registry.IssueRecord
		if err := client.Get(ctx, "/issues", &issues); err != nil {
			t.Fatalf("issues: %v", err)
		}
		if len(issues) != 1 || issues[0].Number != 150 {
			t.Errorf("issues = %+v", issues)
		}
	})

	t.Run("issue acts", func(t *testing.T) {
		var acts []registry.ActRecord
		if err := client.Get(ctx, "/issues/2011/150/acts", &acts); err != nil {
			t.Fatalf("issue acts: %v", err)
		}
		if len(acts) != 1 || acts[0].ID.Serial != "C" {
			t.Errorf("acts = %+v", acts)
		}
	})

	t.Run("act", func(t *testing.T) {
		var rec registry.ActRecord
		if err := client.Get(ctx, "/acts/2011/C", &rec); err != nil {
			t.Fatalf("act: %v", err)
		}
		if rec.Subject != "a példákról" {
			t.Errorf("subject = %q", rec.Subject)
		}
	})

	t.Run("act not found", func(t *testing.T) {
		err := client.Get(ctx, "/acts/1999/X", nil)
		if err == nil {
			t.Fatal("expected not-found error")
		}
	})
}

func TestServer_Lifecycle(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := strconv.Itoa(l.Addr().(*net.TCPAddr).Port)
	l.Close()

	s, err := New(Config{Host: "127.0.0.1", Port: port, Store: seededStore(t)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	client := api.NewClient("http://" + s.Addr())
	deadline := time.Now().Add(5 * time.Second)
	for {
		var resp endpoints.HealthResponse
		if err := client.Get(context.Background(), "/health", &resp); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("server never became healthy")
		}
		time.Sleep(50 * time.Millisecond)
	}
	if !s.IsRunning() {
		t.Error("IsRunning = false while serving")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	if s.IsRunning() {
		t.Error("IsRunning = true after shutdown")
	}
}
