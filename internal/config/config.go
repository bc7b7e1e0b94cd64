package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

// AppName is used for the CLI, logs and metric namespaces
const AppName = "receiptweb"

// AppDesc is shown in --help
const AppDesc = "Server-rendered web frontend for the receipt tracker backend."

// Config holds application configuration. Every field can be set by flag or
// by its RECEIPTS_* environment variable.
type Config struct {
	// Server settings
	ListenAddr string `name:"listen-addr" env:"RECEIPTS_LISTEN_ADDR" help:"${env} - Address to listen on" default:":8080"`
	Debug      bool   `name:"debug" env:"RECEIPTS_DEBUG" help:"${env} - Console logging and template reload on every request" default:"false"`

	// Backend
	BackendURL     string        `name:"backend-url" env:"RECEIPTS_BACKEND_URL" help:"${env} - Base URL of the receipt backend" default:"http://127.0.0.1:8000"`
	BackendTimeout time.Duration `name:"backend-timeout" env:"RECEIPTS_BACKEND_TIMEOUT" help:"${env} - Timeout for a single backend call" default:"30s"`

	// Sessions
	SessionStore   string        `name:"session-store" env:"RECEIPTS_SESSION_STORE" help:"${env} - Where sessions live (memory or cookie)" enum:"memory,cookie" default:"memory"`
	CookieName     string        `name:"cookie-name" env:"RECEIPTS_COOKIE_NAME" help:"${env} - Session cookie name" default:"receipts_session"`
	SecureCookie   bool          `name:"secure-cookie" env:"RECEIPTS_SECURE_COOKIE" help:"${env} - Mark the session cookie Secure" default:"false"`
	SessionKeyFile string        `name:"session-key-file" env:"RECEIPTS_SESSION_KEY_FILE" help:"${env} - age identity used to seal cookie sessions, created when missing"`
	CacheIdleTTL   time.Duration `name:"cache-idle-ttl" env:"RECEIPTS_CACHE_IDLE_TTL" help:"${env} - Drop cached lists of sessions idle this long" default:"2h"`

	// Presentation
	LabelsFile         string `name:"labels-file" env:"RECEIPTS_LABELS_FILE" help:"${env} - YAML file mapping category names to display labels"`
	TemplatesDirectory string `name:"templates-dir" env:"RECEIPTS_TEMPLATES_DIR" help:"${env} - Load templates and static files from disk instead of the embedded copy"`

	// Metrics
	EnableMetrics bool   `name:"enable-metrics" env:"RECEIPTS_ENABLE_METRICS" help:"${env} - Expose Prometheus metrics" default:"true" negatable:""`
	MetricsPath   string `name:"metrics-path" env:"RECEIPTS_METRICS_PATH" help:"${env} - Path under which to expose metrics" default:"/metrics"`
}

// DefaultConfig returns configuration with the same defaults the CLI applies
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:     ":8080",
		BackendURL:     "http://127.0.0.1:8000",
		BackendTimeout: 30 * time.Second,
		SessionStore:   "memory",
		CookieName:     "receipts_session",
		CacheIdleTTL:   2 * time.Hour,
		EnableMetrics:  true,
		MetricsPath:    "/metrics",
	}
}

// Validate checks values kong cannot check on its own
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend url is required")
	}
	if c.BackendTimeout <= 0 {
		return fmt.Errorf("backend timeout must be positive, got %s", c.BackendTimeout)
	}
	if c.SessionStore != "memory" && c.SessionStore != "cookie" {
		return fmt.Errorf("unknown session store %q", c.SessionStore)
	}
	return nil
}

// labelsFile is the on-disk shape of the category label table:
//
//	categories:
//	  Groceries: 食料品
//	  Dining Out: 外食
type labelsFile struct {
	Categories map[string]string `yaml:"categories"`
}

// LoadLabels reads the category label table. An empty path returns nil so the
// caller falls back to the built-in table.
func LoadLabels(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading labels file: %w", err)
	}

	var lf labelsFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing labels file %s: %w", path, err)
	}
	if len(lf.Categories) == 0 {
		return nil, fmt.Errorf("labels file %s has no categories", path)
	}

	return lf.Categories, nil
}
