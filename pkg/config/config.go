// Package config loads the social dashboard configuration from YAML, dotenv
// files and SOCIALDASH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "SOCIALDASH_"

// Log formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

var basePathPattern = regexp.MustCompile(`^/[A-Za-z0-9_\-/]*$`)

// Config is the full application configuration.
type Config struct {
	RefreshInterval      time.Duration `yaml:"refresh_interval"`
	Days                 int           `yaml:"days"`
	NotificationCapacity int           `yaml:"notification_capacity"`
	NotificationMessage  string        `yaml:"notification_message"`
	DarkMode             bool          `yaml:"dark_mode"`
	DefaultMetric        string        `yaml:"default_metric"`
	ScheduledPosts       int           `yaml:"scheduled_posts"`
	Seed                 uint64        `yaml:"seed"`
	HTTP                 HTTPConfig    `yaml:"http"`
	Charts               ChartsConfig  `yaml:"charts"`
	Source               SourceConfig  `yaml:"source"`
	Metrics              MetricsConfig `yaml:"metrics"`
	Log                  LogConfig     `yaml:"log"`
}

// HTTPConfig holds server settings.
type HTTPConfig struct {
	Addr     string `yaml:"addr"`
	BasePath string `yaml:"base_path"`
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.BasePath, validation.Required, validation.Match(basePathPattern)),
	)
}

// ChartsConfig holds chart rendering settings.
type ChartsConfig struct {
	CacheTTL   time.Duration `yaml:"cache_ttl"`
	AssetsHost string        `yaml:"assets_host"`
}

// Validate validates the charts configuration.
func (c *ChartsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.CacheTTL, validation.Min(time.Duration(0))),
	)
}

// SourceConfig points the dashboard at a remote analytics API. An empty URL
// keeps the built-in mock generator.
type SourceConfig struct {
	URL     string        `yaml:"url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Remote reports whether a remote source is configured.
func (c *SourceConfig) Remote() bool {
	return c.URL != ""
}

// Validate validates the source configuration.
func (c *SourceConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URL, is.URL),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// MetricsConfig controls the Prometheus listener.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`
	Namespace string `yaml:"namespace"`
}

// Validate validates the metrics configuration.
func (c *MetricsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.When(c.Enabled, validation.Required)),
		validation.Field(&c.Namespace, validation.When(c.Enabled, validation.Required)),
	)
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Validate validates the log configuration.
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.In("trace", "debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.Required, validation.In(FormatJSON, FormatText)),
	)
}

// NewDefaultConfig returns a Config with the stock dashboard behavior.
func NewDefaultConfig() *Config {
	return &Config{
		RefreshInterval:      5 * time.Second,
		Days:                 7,
		NotificationCapacity: 5,
		NotificationMessage:  "Engagement spike detected! 📈",
		DefaultMetric:        "followers",
		ScheduledPosts:       12,
		HTTP: HTTPConfig{
			Addr:     ":9876",
			BasePath: "/social",
		},
		Charts: ChartsConfig{
			CacheTTL: 5 * time.Second,
		},
		Source: SourceConfig{
			Timeout: 3 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Addr:      ":9877",
			Namespace: "socialdash",
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatJSON,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.RefreshInterval, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.Days, validation.Required, validation.Min(1)),
		validation.Field(&c.NotificationCapacity, validation.Required, validation.Min(1)),
		validation.Field(&c.NotificationMessage, validation.Required),
		validation.Field(&c.DefaultMetric, validation.Required, validation.In("followers", "engagement", "posts")),
		validation.Field(&c.ScheduledPosts, validation.Min(0)),
	); err != nil {
		return err
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if err := c.Charts.Validate(); err != nil {
		return fmt.Errorf("charts: %w", err)
	}
	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// Load builds the configuration: defaults, then the YAML file (when path is
// not empty), then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadEnv loads .env style files into the process environment. Missing files
// are skipped.
func LoadEnv(logger logrus.FieldLogger, files ...string) []string {
	if len(files) == 0 {
		files = []string{".env", ".env.local"}
	}
	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			if logger != nil {
				logger.WithError(err).Warnf("failed to load %s", file)
			}
			continue
		}
		loaded = append(loaded, file)
	}
	if logger != nil && len(loaded) > 0 {
		logger.Debugf("loaded env files: %s", strings.Join(loaded, ", "))
	}
	return loaded
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from SOCIALDASH_* variables.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}
	var errs []error
	get := func(name string) (string, bool) {
		value, ok := lookup(EnvPrefix + name)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}
	duration := func(name string, dst *time.Duration) {
		if value, ok := get(name); ok {
			parsed, err := time.ParseDuration(value)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = parsed
		}
	}
	integer := func(name string, dst *int) {
		if value, ok := get(name); ok {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = parsed
		}
	}
	boolean := func(name string, dst *bool) {
		if value, ok := get(name); ok {
			parsed, err := strconv.ParseBool(value)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = parsed
		}
	}
	str := func(name string, dst *string) {
		if value, ok := get(name); ok {
			*dst = value
		}
	}

	duration("REFRESH_INTERVAL", &c.RefreshInterval)
	integer("DAYS", &c.Days)
	integer("NOTIFICATION_CAPACITY", &c.NotificationCapacity)
	str("NOTIFICATION_MESSAGE", &c.NotificationMessage)
	boolean("DARK_MODE", &c.DarkMode)
	str("DEFAULT_METRIC", &c.DefaultMetric)
	integer("SCHEDULED_POSTS", &c.ScheduledPosts)
	if value, ok := get("SEED"); ok {
		parsed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED: %w", EnvPrefix, err))
		} else {
			c.Seed = parsed
		}
	}
	str("HTTP_ADDR", &c.HTTP.Addr)
	str("HTTP_BASE_PATH", &c.HTTP.BasePath)
	duration("CHARTS_CACHE_TTL", &c.Charts.CacheTTL)
	str("CHARTS_ASSETS_HOST", &c.Charts.AssetsHost)
	str("SOURCE_URL", &c.Source.URL)
	str("SOURCE_API_KEY", &c.Source.APIKey)
	duration("SOURCE_TIMEOUT", &c.Source.Timeout)
	boolean("METRICS_ENABLED", &c.Metrics.Enabled)
	str("METRICS_ADDR", &c.Metrics.Addr)
	str("METRICS_NAMESPACE", &c.Metrics.Namespace)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	return errors.Join(errs...)
}

// Logger builds a logrus logger for the configured level and format.
func (c *Config) Logger() *logrus.Logger {
	logger := logrus.New()
	if c.Log.Format == FormatText {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
