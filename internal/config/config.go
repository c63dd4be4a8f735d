package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/homepage/internal/storage"
)

// Config holds everything homepage reads at startup.
type Config struct {
	Name    string `toml:"name" yaml:"name"`
	Tagline string `toml:"tagline" yaml:"tagline"`

	SiteURL     string `toml:"site_url" yaml:"site_url"`
	LinksPath   string `toml:"links_path" yaml:"links_path"`
	VersionPath string `toml:"version_path" yaml:"version_path"`

	Attempts        int `toml:"attempts" yaml:"attempts"`
	RetryDelayMS    int `toml:"retry_delay_ms" yaml:"retry_delay_ms"`
	RequestTimeoutS int `toml:"request_timeout_seconds" yaml:"request_timeout_seconds"`

	Storage StorageConfig `toml:"storage" yaml:"storage"`

	AppearancePath string `toml:"appearance_path" yaml:"appearance_path"`
	LogFile        string `toml:"log_file" yaml:"log_file"`
	LogLevel       string `toml:"log_level" yaml:"log_level"`

	Links []LinkButton `toml:"links" yaml:"links"`
}

// envOverrides lists the HOMEPAGE_* variables that override file values.
type envOverrides struct {
	Name            string `env:"NAME"`
	Tagline         string `env:"TAGLINE"`
	SiteURL         string `env:"SITE_URL"`
	LinksPath       string `env:"LINKS_PATH"`
	VersionPath     string `env:"VERSION_PATH"`
	Attempts        int    `env:"ATTEMPTS"`
	RetryDelayMS    *int   `env:"RETRY_DELAY_MS"`
	RequestTimeoutS int    `env:"REQUEST_TIMEOUT_SECONDS"`
	StorageBackend  string `env:"STORAGE_BACKEND"`
	StoragePath     string `env:"STORAGE_PATH"`
	AppearancePath  string `env:"APPEARANCE_PATH"`
	LogFile         string `env:"LOG_FILE"`
	LogLevel        string `env:"LOG_LEVEL"`
}

func (o envOverrides) apply(c *Config) {
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	set(&c.Name, o.Name)
	set(&c.Tagline, o.Tagline)
	set(&c.SiteURL, o.SiteURL)
	set(&c.LinksPath, o.LinksPath)
	set(&c.VersionPath, o.VersionPath)
	set(&c.Storage.Backend, o.StorageBackend)
	set(&c.Storage.Path, o.StoragePath)
	set(&c.AppearancePath, o.AppearancePath)
	set(&c.LogFile, o.LogFile)
	set(&c.LogLevel, o.LogLevel)
	if o.Attempts != 0 {
		c.Attempts = o.Attempts
	}
	if o.RetryDelayMS != nil {
		c.RetryDelayMS = *o.RetryDelayMS
	}
	if o.RequestTimeoutS != 0 {
		c.RequestTimeoutS = o.RequestTimeoutS
	}
}

// StorageConfig selects the durable preference backend.
type StorageConfig struct {
	Backend string `toml:"backend" yaml:"backend"`
	Path    string `toml:"path" yaml:"path"`
}

// LinkButton is one social button; ID matches a link id in the links document.
type LinkButton struct {
	ID    string `toml:"id" yaml:"id"`
	Label string `toml:"label" yaml:"label"`
}

const (
	defaultConfigPath     = "~/.config/homepage/config.toml"
	defaultName           = "toxic5018"
	defaultTagline        = "welcome to my corner of the internet"
	defaultSiteURL        = "https://toxic5018.me"
	defaultLinksPath      = "link.xml"
	defaultVersionPath    = "version.xml"
	defaultAttempts       = 3
	defaultRetryDelayMS   = 1000
	defaultRequestTimeout = 5
	defaultFileStorePath  = "~/.local/share/homepage/prefs.toml"
	defaultSQLiteDBPath   = "~/.local/share/homepage/prefs.db"
	defaultAppearancePath = "~/.config/homepage/appearance"
	defaultLogFile        = "~/.local/state/homepage/homepage.log"
	defaultLogLevel       = "info"
	envPrefix             = "HOMEPAGE_"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// DefaultLinks returns the stock social buttons.
func DefaultLinks() []LinkButton {
	return []LinkButton{
		{ID: "1", Label: "YouTube"},
		{ID: "2", Label: "TikTok"},
		{ID: "3", Label: "Discord"},
		{ID: "4", Label: "GitHub"},
	}
}

// Default returns a Config populated with defaults and unexpanded paths.
func Default() Config {
	return Config{
		Name:            defaultName,
		Tagline:         defaultTagline,
		SiteURL:         defaultSiteURL,
		LinksPath:       defaultLinksPath,
		VersionPath:     defaultVersionPath,
		Attempts:        defaultAttempts,
		RetryDelayMS:    defaultRetryDelayMS,
		RequestTimeoutS: defaultRequestTimeout,
		Storage:         StorageConfig{Backend: storage.BackendFile},
		AppearancePath:  defaultAppearancePath,
		LogFile:         defaultLogFile,
		LogLevel:        defaultLogLevel,
		Links:           DefaultLinks(),
	}
}

// Load reads the config at path (TOML, or YAML for .yaml/.yml), applies
// HOMEPAGE_* environment overrides, fills defaults and validates. A missing
// file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	bytes, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		// File links replace the defaults rather than merging into them.
		cfg.Links = nil
		if err := decode(resolved, bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var overrides envOverrides
	if err := env.ParseWithOptions(&overrides, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	overrides.apply(&cfg)

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decode(path string, bytes []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(bytes, cfg)
	default:
		return toml.Unmarshal(bytes, cfg)
	}
}

func (c *Config) normalize() {
	def := Default()

	c.Name = orDefault(c.Name, def.Name)
	c.Tagline = strings.TrimSpace(c.Tagline)
	c.SiteURL = strings.TrimRight(orDefault(c.SiteURL, def.SiteURL), "/")
	c.LinksPath = strings.TrimLeft(orDefault(c.LinksPath, def.LinksPath), "/")
	c.VersionPath = strings.TrimLeft(orDefault(c.VersionPath, def.VersionPath), "/")

	if c.Attempts == 0 {
		c.Attempts = def.Attempts
	}
	if c.RequestTimeoutS == 0 {
		c.RequestTimeoutS = def.RequestTimeoutS
	}

	c.Storage.Backend = strings.ToLower(orDefault(c.Storage.Backend, storage.BackendFile))
	if strings.TrimSpace(c.Storage.Path) == "" {
		switch c.Storage.Backend {
		case storage.BackendSQLite:
			c.Storage.Path = defaultSQLiteDBPath
		case storage.BackendFile:
			c.Storage.Path = defaultFileStorePath
		}
	}
	if c.Storage.Path != "" {
		c.Storage.Path = mustExpand(c.Storage.Path)
	}

	c.AppearancePath = mustExpand(orDefault(c.AppearancePath, def.AppearancePath))
	c.LogFile = mustExpand(orDefault(c.LogFile, def.LogFile))
	c.LogLevel = strings.ToLower(orDefault(c.LogLevel, def.LogLevel))

	links := make([]LinkButton, 0, len(c.Links))
	for _, l := range c.Links {
		l.ID = strings.TrimSpace(l.ID)
		l.Label = strings.TrimSpace(l.Label)
		if l.Label == "" {
			l.Label = "Link " + l.ID
		}
		links = append(links, l)
	}
	if len(links) == 0 {
		links = def.Links
	}
	c.Links = links
}

// Validate checks field ranges after defaults are applied.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.SiteURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.LinksPath, validation.Required),
		validation.Field(&c.VersionPath, validation.Required),
		validation.Field(&c.Attempts, validation.Min(1), validation.Max(10)),
		validation.Field(&c.RetryDelayMS, validation.Min(0), validation.Max(60000)),
		validation.Field(&c.RequestTimeoutS, validation.Min(1), validation.Max(120)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	seen := make(map[string]struct{}, len(c.Links))
	for i := range c.Links {
		if err := c.Links[i].Validate(); err != nil {
			return fmt.Errorf("links[%d]: %w", i, err)
		}
		if _, dup := seen[c.Links[i].ID]; dup {
			return fmt.Errorf("links[%d]: duplicate id %q", i, c.Links[i].ID)
		}
		seen[c.Links[i].ID] = struct{}{}
	}
	return nil
}

// Validate checks the backend name and path.
func (s *StorageConfig) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Backend, validation.Required,
			validation.In(storage.BackendFile, storage.BackendSQLite, storage.BackendMemory)),
		validation.Field(&s.Path, validation.When(s.Backend != storage.BackendMemory, validation.Required)),
	)
}

// Validate requires an id.
func (l *LinkButton) Validate() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.ID, validation.Required),
	)
}

// RetryDelay returns the fixed backoff between fetch attempts.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

// RequestTimeout returns the per-request HTTP timeout.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutS) * time.Second
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("must include a host")
	}
	return nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
