package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.APIBaseURL != "http://localhost:8007/api" {
		t.Errorf("unexpected default APIBaseURL %q", cfg.APIBaseURL)
	}
	if cfg.DefaultSort != "newest" || cfg.UploadFolder != "wedding-gallery" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("unexpected error loading non-existent file: %v", err)
	}
	if cfg.APIBaseURL != DefaultConfig().APIBaseURL {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestLoad_FillsMissingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api_base_url: https://gallery.example/api/\ndefault_sort: sideways\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.APIBaseURL != "https://gallery.example/api" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.APIBaseURL)
	}
	if cfg.DefaultSort != "newest" {
		t.Errorf("expected invalid sort replaced by default, got %q", cfg.DefaultSort)
	}
	if cfg.UploadFolder != "wedding-gallery" || cfg.CacheDir == "" {
		t.Errorf("expected defaults for missing keys, got %+v", cfg)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_base_url: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestSave_And_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.GuestName = "Alex"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.GuestName != "Alex" {
		t.Errorf("expected guest name to round trip, got %q", loaded.GuestName)
	}
}
