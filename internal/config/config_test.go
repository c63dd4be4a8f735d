package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SiteURL != defaultSiteURL {
		t.Fatalf("SiteURL = %q, want %q", cfg.SiteURL, defaultSiteURL)
	}
	if cfg.Attempts != 3 || cfg.RetryDelay() != time.Second {
		t.Fatalf("Attempts/RetryDelay = %d/%v, want 3/1s", cfg.Attempts, cfg.RetryDelay())
	}
	if cfg.RequestTimeout() != 5*time.Second {
		t.Fatalf("RequestTimeout = %v, want 5s", cfg.RequestTimeout())
	}
	if cfg.Storage.Backend != "file" || !strings.HasPrefix(cfg.Storage.Path, home) {
		t.Fatalf("Storage = %#v, want file backend under HOME", cfg.Storage)
	}
	if !strings.HasPrefix(cfg.LogFile, home) || !strings.HasPrefix(cfg.AppearancePath, home) {
		t.Fatalf("paths not expanded under HOME: log=%q appearance=%q", cfg.LogFile, cfg.AppearancePath)
	}
	if diff := cmp.Diff(DefaultLinks(), cfg.Links); diff != "" {
		t.Fatalf("Links mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ParsesAndTrimsTOML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
name = "  me  "
site_url = " http://127.0.0.1:8080/ "
links_path = "/data/links.xml"
attempts = 5
retry_delay_ms = 250

[storage]
backend = "SQLite"

[[links]]
id = " 7 "
label = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Name != "me" {
		t.Fatalf("Name = %q, want me", cfg.Name)
	}
	if cfg.SiteURL != "http://127.0.0.1:8080" {
		t.Fatalf("SiteURL = %q, want trailing slash trimmed", cfg.SiteURL)
	}
	if cfg.LinksPath != "data/links.xml" {
		t.Fatalf("LinksPath = %q, want data/links.xml", cfg.LinksPath)
	}
	if cfg.Attempts != 5 || cfg.RetryDelay() != 250*time.Millisecond {
		t.Fatalf("Attempts/RetryDelay = %d/%v, want 5/250ms", cfg.Attempts, cfg.RetryDelay())
	}
	if cfg.Storage.Backend != "sqlite" || filepath.Base(cfg.Storage.Path) != "prefs.db" {
		t.Fatalf("Storage = %#v, want sqlite default path", cfg.Storage)
	}
	want := []LinkButton{{ID: "7", Label: "Link 7"}}
	if diff := cmp.Diff(want, cfg.Links); diff != "" {
		t.Fatalf("Links mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(`
tagline: hello there
storage:
  backend: memory
links:
  - id: "1"
    label: Site
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Tagline != "hello there" {
		t.Fatalf("Tagline = %q", cfg.Tagline)
	}
	if cfg.Storage.Backend != "memory" || cfg.Storage.Path != "" {
		t.Fatalf("Storage = %#v, want memory with no path", cfg.Storage)
	}
	if len(cfg.Links) != 1 || cfg.Links[0].Label != "Site" {
		t.Fatalf("Links = %#v", cfg.Links)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HOMEPAGE_SITE_URL", "https://example.org")
	t.Setenv("HOMEPAGE_ATTEMPTS", "2")
	t.Setenv("HOMEPAGE_RETRY_DELAY_MS", "0")
	t.Setenv("HOMEPAGE_STORAGE_BACKEND", "memory")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`site_url = "https://file.example"`+"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SiteURL != "https://example.org" {
		t.Fatalf("SiteURL = %q, want env override", cfg.SiteURL)
	}
	if cfg.Attempts != 2 || cfg.RetryDelay() != 0 {
		t.Fatalf("Attempts/RetryDelay = %d/%v, want 2/0", cfg.Attempts, cfg.RetryDelay())
	}
	if cfg.Storage.Backend != "memory" {
		t.Fatalf("Storage.Backend = %q, want memory", cfg.Storage.Backend)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`site_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %v, want parse config error", err)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := map[string]string{
		"bad scheme":      `site_url = "ftp://example.org"`,
		"too many tries":  `attempts = 50`,
		"unknown backend": "[storage]\nbackend = \"etcd\"",
		"duplicate links": "[[links]]\nid = \"1\"\n[[links]]\nid = \"1\"",
		"bad log level":   `log_level = "loud"`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body+"\n"), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), "invalid config") {
				t.Fatalf("Load error = %v, want invalid config", err)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
