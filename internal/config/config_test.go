package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Download.URLTemplate == "" {
		t.Error("expected default download URL template")
	}
	if cfg.Download.MaxRetries <= 0 {
		t.Error("expected positive default retry count")
	}
	if cfg.Parse.Workers <= 0 {
		t.Error("expected positive default worker count")
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written config: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("written config is empty")
	}

	cm, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager failed on written default: %v", err)
	}
	if cm.Get().Server.Host != "127.0.0.1" {
		t.Errorf("expected default host, got %s", cm.Get().Server.Host)
	}
}
