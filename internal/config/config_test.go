package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Relays) == 0 {
		t.Error("defaults should configure relay endpoints")
	}
	if len(cfg.Feeds) == 0 {
		t.Error("defaults should configure feeds")
	}
	if cfg.Categories[0].ID != "all" {
		t.Errorf("first category = %q, want the catch-all", cfg.Categories[0].ID)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("embedded defaults must validate: %v", err)
	}

	// First run materializes the defaults for editing.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults not written out: %v", err)
	}
}

func TestLoadExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
settings:
  fetch_timeout: 3s
relays:
  - "https://relay.example/?u=%s"
categories:
  - id: all
    label: All
  - id: models
    label: Models
    keywords: [gpt]
feeds:
  - name: Alpha
    url: https://alpha.example/rss
    type: rss
    default_category: models
    enabled: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.FetchTimeout(); got != 3*time.Second {
		t.Errorf("fetch timeout = %v, want 3s", got)
	}
	if len(cfg.Feeds) != 1 || cfg.Feeds[0].Name != "Alpha" {
		t.Errorf("feeds = %+v", cfg.Feeds)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("relays: [unclosed\nfeeds: {"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml should fail to load")
	}
}

func TestDurationFallbacks(t *testing.T) {
	cfg := &Config{}
	if got := cfg.FetchTimeout(); got != 10*time.Second {
		t.Errorf("empty fetch timeout = %v, want 10s fallback", got)
	}
	if got := cfg.CacheTTL(); got != 15*time.Minute {
		t.Errorf("empty cache ttl = %v, want 15m fallback", got)
	}

	cfg.Settings.FetchTimeout = "-5s"
	if got := cfg.FetchTimeout(); got != 10*time.Second {
		t.Errorf("negative fetch timeout = %v, want fallback", got)
	}
	cfg.Settings.FetchTimeout = "nonsense"
	if got := cfg.FetchTimeout(); got != 10*time.Second {
		t.Errorf("unparseable fetch timeout = %v, want fallback", got)
	}
}

func validConfig() *Config {
	return &Config{
		Relays: []string{"https://relay.example/?u=%s"},
		Categories: []Category{
			{ID: "all", Label: "All"},
			{ID: "models", Label: "Models", Keywords: []string{"gpt"}},
		},
		Feeds: []Feed{{
			Name:            "Alpha",
			URL:             "https://alpha.example/rss",
			Type:            "rss",
			DefaultCategory: "models",
			Enabled:         true,
		}},
		Accounts: []Account{{
			Name:          "Lab",
			PrimaryHandle: "lab",
			Category:      "models",
			Enabled:       true,
		}},
		Strategies: []string{StrategyNativeFeed, StrategyBridge, StrategyMirrors},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing all category", func(c *Config) { c.Categories = c.Categories[1:] }, "catch-all"},
		{"no relays", func(c *Config) { c.Relays = nil }, "relay"},
		{"relay without placeholder", func(c *Config) { c.Relays = []string{"https://relay.example/"} }, "%s"},
		{"feed without name", func(c *Config) { c.Feeds[0].Name = "" }, "name"},
		{"feed without url", func(c *Config) { c.Feeds[0].URL = "" }, "url"},
		{"feed with bad scheme", func(c *Config) { c.Feeds[0].URL = "ftp://alpha.example/rss" }, "scheme"},
		{"feed with unknown type", func(c *Config) { c.Feeds[0].Type = "json" }, "type"},
		{"feed with unknown category", func(c *Config) { c.Feeds[0].DefaultCategory = "nope" }, "category"},
		{"account without handles", func(c *Config) {
			c.Accounts[0].PrimaryHandle = ""
			c.Accounts[0].SecondaryHandle = ""
		}, "handle"},
		{"account with unknown category", func(c *Config) { c.Accounts[0].Category = "nope" }, "category"},
		{"unknown strategy", func(c *Config) { c.Strategies = []string{"telepathy"} }, "strategy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected an error mentioning %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnabledFilters(t *testing.T) {
	cfg := validConfig()
	cfg.Feeds = append(cfg.Feeds, Feed{Name: "Off", URL: "https://off.example/rss", DefaultCategory: "models"})
	cfg.Accounts = append(cfg.Accounts, Account{Name: "Dormant", PrimaryHandle: "x", Category: "models"})

	if got := cfg.EnabledFeeds(); len(got) != 1 || got[0].Name != "Alpha" {
		t.Errorf("EnabledFeeds = %+v", got)
	}
	if got := cfg.EnabledAccounts(); len(got) != 1 || got[0].Name != "Lab" {
		t.Errorf("EnabledAccounts = %+v", got)
	}
}

func TestCategoryIDs(t *testing.T) {
	cfg := validConfig()
	got := cfg.CategoryIDs()
	if len(got) != 2 || got[0] != "all" || got[1] != "models" {
		t.Errorf("CategoryIDs = %v", got)
	}
}
