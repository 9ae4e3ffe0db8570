package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/sitesearch/internal/domain/search/view"
	"github.com/kailas-cloud/sitesearch/internal/logger"
)

// Config holds the sitesearch service configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Search  SearchConfig  `yaml:"search"`
	Render  RenderConfig  `yaml:"render"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// MetricsConfig guards the /metrics endpoint. Empty api_keys leaves it open.
type MetricsConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int  `yaml:"port"`
	ReadTimeoutSec  int  `yaml:"read_timeout_sec"`
	WriteTimeoutSec int  `yaml:"write_timeout_sec"`
	ShutdownSec     int  `yaml:"shutdown_timeout_sec"`
	Gzip            bool `yaml:"gzip"`
}

// CorpusConfig selects the document source. Empty path uses the embedded corpus.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// SearchConfig holds index settings.
type SearchConfig struct {
	IndexName     string  `yaml:"index_name"`
	TitleBoost    float64 `yaml:"title_boost"`
	ExcerptLength int     `yaml:"excerpt_length"`
	TimeoutMs     int     `yaml:"timeout_ms"`
}

// RenderConfig holds presentation surface settings.
type RenderConfig struct {
	DefaultView string `yaml:"default_view"` // modal (default) or list
	ContainerID string `yaml:"container_id"`
	OpenClass   string `yaml:"open_class"`
	DismissID   string `yaml:"dismiss_id"`
	SiteTitle   string `yaml:"site_title"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expands ${VAR} references, applies
// defaults and validates the result.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Search.IndexName == "" {
		c.Search.IndexName = "site"
	}
	if c.Search.TitleBoost <= 0 {
		c.Search.TitleBoost = 1
	}
	if c.Search.ExcerptLength <= 0 {
		c.Search.ExcerptLength = 160
	}
	if c.Search.TimeoutMs <= 0 {
		c.Search.TimeoutMs = 2000
	}
	if c.Render.DefaultView == "" {
		c.Render.DefaultView = string(view.Modal)
	}
	if c.Render.ContainerID == "" {
		c.Render.ContainerID = "search-results"
	}
	if c.Render.OpenClass == "" {
		c.Render.OpenClass = "modal-open"
	}
	if c.Render.DismissID == "" {
		c.Render.DismissID = "search-close"
	}
	if c.Render.SiteTitle == "" {
		c.Render.SiteTitle = "Search"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if !view.View(c.Render.DefaultView).IsValid() {
		return fmt.Errorf("render.default_view must be \"modal\" or \"list\", got %q", c.Render.DefaultView)
	}
	if c.Render.ContainerID == c.Render.DismissID {
		return fmt.Errorf("render.container_id and render.dismiss_id must differ, both are %q", c.Render.ContainerID)
	}
	if c.Logging.Level != "" {
		if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("logging.level: %w", err)
		}
	}
	for i, k := range c.Metrics.APIKeys {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("metrics.api_keys[%d] is empty", i)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
