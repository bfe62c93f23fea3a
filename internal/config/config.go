package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Cascade strategy tokens, in the order the default config tries them.
const (
	StrategyNativeFeed = "native-feed"
	StrategyBridge     = "bridge-service"
	StrategyMirrors    = "mirror-instances"
)

// Feed is a static RSS/Atom source definition. Immutable for the process
// lifetime; the aggregator consumes it read-only.
type Feed struct {
	Name            string `yaml:"name"`
	URL             string `yaml:"url"`
	Type            string `yaml:"type"`
	DefaultCategory string `yaml:"default_category"`
	Language        string `yaml:"language"`
	Enabled         bool   `yaml:"enabled"`
}

// Account is a social source without a stable feed URL. The cascade builds
// its attempt list from the handles.
type Account struct {
	Name            string `yaml:"name"`
	PrimaryHandle   string `yaml:"primary_handle,omitempty"`
	SecondaryHandle string `yaml:"secondary_handle,omitempty"`
	Category        string `yaml:"category"`
	Enabled         bool   `yaml:"enabled"`
}

// Category is one entry of the categorization table. The first entry is the
// catch-all "all" category with no keywords; it is excluded from scoring.
type Category struct {
	ID       string   `yaml:"id"`
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// Settings holds the pipeline tunables.
type Settings struct {
	FetchTimeout       string `yaml:"fetch_timeout"`
	CacheTTL           string `yaml:"cache_ttl"`
	RefreshInterval    string `yaml:"refresh_interval"`
	MaxArticlesPerFeed int    `yaml:"max_articles_per_feed"`
	MaxTotalArticles   int    `yaml:"max_total_articles"`
}

type Config struct {
	Settings   Settings   `yaml:"settings"`
	Relays     []string   `yaml:"relays"`
	Bridge     string     `yaml:"bridge"`
	Mirrors    []string   `yaml:"mirrors"`
	Strategies []string   `yaml:"strategies"`
	Feeds      []Feed     `yaml:"feeds"`
	Accounts   []Account  `yaml:"accounts"`
	Categories []Category `yaml:"categories"`
}

func (c *Config) FetchTimeout() time.Duration {
	return c.duration(c.Settings.FetchTimeout, 10*time.Second)
}

func (c *Config) CacheTTL() time.Duration {
	return c.duration(c.Settings.CacheTTL, 15*time.Minute)
}

func (c *Config) RefreshInterval() time.Duration {
	return c.duration(c.Settings.RefreshInterval, 15*time.Minute)
}

func (c *Config) duration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func (c *Config) EnabledFeeds() []Feed {
	var out []Feed
	for _, f := range c.Feeds {
		if f.Enabled {
			out = append(out, f)
		}
	}
	return out
}

func (c *Config) EnabledAccounts() []Account {
	var out []Account
	for _, a := range c.Accounts {
		if a.Enabled {
			out = append(out, a)
		}
	}
	return out
}

// CategoryIDs returns every configured category ID in table order.
func (c *Config) CategoryIDs() []string {
	ids := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		ids = append(ids, cat.ID)
	}
	return ids
}

func (c *Config) validCategory(id string) bool {
	for _, cat := range c.Categories {
		if cat.ID == id {
			return true
		}
	}
	return false
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "ai-news-hub", "config.yaml")
}

func DefaultCachePath() string {
	return filepath.Join(xdg.CacheHome, "ai-news-hub", "snapshot.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path, falling back to the embedded defaults when
// no file exists yet. On first run the defaults are written out so users
// have something to edit.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			defaults, derr := loadDefaults()
			if derr != nil {
				return nil, derr
			}
			// Non-fatal: just use embedded defaults
			_ = writeDefaults(path)
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// Validate checks cross-references and URL shapes. The category table must
// lead with the "all" catch-all so scoring can skip it by position.
func Validate(cfg *Config) error {
	if len(cfg.Categories) == 0 || cfg.Categories[0].ID != "all" {
		return fmt.Errorf("categories: first entry must be the %q catch-all", "all")
	}
	if len(cfg.Relays) == 0 {
		return fmt.Errorf("relays: at least one relay endpoint is required")
	}
	for i, r := range cfg.Relays {
		if !strings.Contains(r, "%s") {
			return fmt.Errorf("relay %d: endpoint template must contain %%s", i)
		}
	}

	validTypes := map[string]bool{"rss": true, "atom": true, "": true}
	for i, f := range cfg.Feeds {
		if f.Name == "" {
			return fmt.Errorf("feed %d: name is required", i)
		}
		if f.URL == "" {
			return fmt.Errorf("feed %q: url is required", f.Name)
		}
		u, err := url.Parse(f.URL)
		if err != nil {
			return fmt.Errorf("feed %q: invalid url: %w", f.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("feed %q: url scheme must be http or https, got %q", f.Name, u.Scheme)
		}
		if !validTypes[f.Type] {
			return fmt.Errorf("feed %q: unknown type %q (valid: rss, atom)", f.Name, f.Type)
		}
		if !cfg.validCategory(f.DefaultCategory) {
			return fmt.Errorf("feed %q: unknown default category %q", f.Name, f.DefaultCategory)
		}
	}

	for i, a := range cfg.Accounts {
		if a.Name == "" {
			return fmt.Errorf("account %d: name is required", i)
		}
		if a.PrimaryHandle == "" && a.SecondaryHandle == "" {
			return fmt.Errorf("account %q: at least one handle is required", a.Name)
		}
		if !cfg.validCategory(a.Category) {
			return fmt.Errorf("account %q: unknown category %q", a.Name, a.Category)
		}
	}

	valid := map[string]bool{StrategyNativeFeed: true, StrategyBridge: true, StrategyMirrors: true}
	for _, s := range cfg.Strategies {
		if !valid[s] {
			return fmt.Errorf("strategies: unknown strategy %q", s)
		}
	}
	return nil
}
