// Package site carries the per-deployment configuration. The main site and
// the corporate careers site run the same save logic; everything that used
// to differ between their two page scripts is a field here instead.
package site

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/newteatrade/saves/pkg/models"
)

// StoreConfig points at the document store.
type StoreConfig struct {
	URL       string `yaml:"url"`
	Namespace string `yaml:"namespace"`
	Database  string `yaml:"database"`
}

// AuthConfig names the record-access method used for sign-in and sign-up.
type AuthConfig struct {
	Access string `yaml:"access"`
}

// Config is one deployment of the site.
type Config struct {
	Name       string   `yaml:"name"`        // "main" | "corporate"
	PathPrefix string   `yaml:"path_prefix"` // prepended to every site-relative path
	LoginPath  string   `yaml:"login_path"`  // where unauthenticated save clicks redirect
	CatalogURL string   `yaml:"catalog_url"` // product catalog JSON document
	Kinds      []string `yaml:"kinds"`       // savable kinds this deployment renders
	LogLevel   string   `yaml:"log_level"`

	Store StoreConfig `yaml:"store"`
	Auth  AuthConfig  `yaml:"auth"`
}

// Main is the default configuration of the main site: all three kinds.
func Main() *Config {
	return &Config{
		Name:       "main",
		PathPrefix: "",
		LoginPath:  "/account/login",
		CatalogURL: "https://newteatrade.com/data/market-reports-library.json",
		Kinds:      []string{"products", "recipes", "jobs"},
		LogLevel:   "info",
		Store: StoreConfig{
			URL:       "ws://localhost:8000/rpc",
			Namespace: "newteatrade",
			Database:  "site",
		},
		Auth: AuthConfig{Access: "user"},
	}
}

// Corporate is the default configuration of the corporate careers site:
// jobs only, no catalog.
func Corporate() *Config {
	cfg := Main()
	cfg.Name = "corporate"
	cfg.PathPrefix = "/corporate"
	cfg.LoginPath = "/corporate/login"
	cfg.CatalogURL = ""
	cfg.Kinds = []string{"jobs"}
	return cfg
}

// Load reads a YAML config file over the Main defaults, then applies
// SAVES_* environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Main()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.Name = getenv("SAVES_SITE", cfg.Name)
	cfg.PathPrefix = getenv("SAVES_PATH_PREFIX", cfg.PathPrefix)
	cfg.LoginPath = getenv("SAVES_LOGIN_PATH", cfg.LoginPath)
	cfg.CatalogURL = getenv("SAVES_CATALOG_URL", cfg.CatalogURL)
	cfg.LogLevel = getenv("SAVES_LOG_LEVEL", cfg.LogLevel)
	cfg.Store.URL = getenv("SAVES_STORE_URL", cfg.Store.URL)
	cfg.Store.Namespace = getenv("SAVES_STORE_NAMESPACE", cfg.Store.Namespace)
	cfg.Store.Database = getenv("SAVES_STORE_DATABASE", cfg.Store.Database)
	cfg.Auth.Access = getenv("SAVES_AUTH_ACCESS", cfg.Auth.Access)
	if kinds := getenv("SAVES_KINDS", ""); kinds != "" {
		cfg.Kinds = splitList(kinds)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Kinds) == 0 {
		return fmt.Errorf("config enables no kinds")
	}
	for _, k := range c.Kinds {
		if _, err := models.ParseKind(k); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// EnabledKinds returns the kinds this deployment renders, in config order.
func (c *Config) EnabledKinds() []models.Kind {
	out := make([]models.Kind, 0, len(c.Kinds))
	for _, k := range c.Kinds {
		out = append(out, models.Kind(k))
	}
	return out
}

// KindEnabled reports whether this deployment renders kind at all.
func (c *Config) KindEnabled(kind models.Kind) bool {
	for _, k := range c.Kinds {
		if models.Kind(k) == kind {
			return true
		}
	}
	return false
}

// LoginURL is the full redirect target for unauthenticated save clicks.
func (c *Config) LoginURL() string {
	return c.LoginPath
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
