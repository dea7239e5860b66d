package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 7, cfg.Days)
	assert.Equal(t, 5, cfg.NotificationCapacity)
	assert.Equal(t, "/social", cfg.HTTP.BasePath)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `
refresh_interval: 2s
days: 14
dark_mode: true
default_metric: posts
http:
  addr: ":8080"
charts:
  cache_ttl: 1s
log:
  level: debug
  format: text
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 14, cfg.Days)
	assert.True(t, cfg.DarkMode)
	assert.Equal(t, "posts", cfg.DefaultMetric)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "/social", cfg.HTTP.BasePath, "unset keys keep defaults")
	assert.Equal(t, time.Second, cfg.Charts.CacheTTL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_metric: reach\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DefaultMetric")
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := NewDefaultConfig()
	err := cfg.ApplyEnv(lookupFrom(map[string]string{
		"SOCIALDASH_REFRESH_INTERVAL":     "750ms",
		"SOCIALDASH_DAYS":                 "30",
		"SOCIALDASH_DARK_MODE":            "true",
		"SOCIALDASH_SEED":                 "99",
		"SOCIALDASH_HTTP_BASE_PATH":       "/metrics",
		"SOCIALDASH_LOG_FORMAT":           "text",
		"SOCIALDASH_NOTIFICATION_MESSAGE": "  ",
	}))
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.RefreshInterval)
	assert.Equal(t, 30, cfg.Days)
	assert.True(t, cfg.DarkMode)
	assert.EqualValues(t, 99, cfg.Seed)
	assert.Equal(t, "/metrics", cfg.HTTP.BasePath)
	assert.Equal(t, FormatText, cfg.Log.Format)
	assert.Equal(t, "Engagement spike detected! 📈", cfg.NotificationMessage, "blank values are ignored")
	require.NoError(t, cfg.Validate())
}

func TestApplyEnvCollectsParseErrors(t *testing.T) {
	cfg := NewDefaultConfig()
	err := cfg.ApplyEnv(lookupFrom(map[string]string{
		"SOCIALDASH_DAYS":      "seven",
		"SOCIALDASH_DARK_MODE": "maybe",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOCIALDASH_DAYS")
	assert.Contains(t, err.Error(), "SOCIALDASH_DARK_MODE")
	assert.Equal(t, 7, cfg.Days)
}

func TestValidateRejectsZeroDays(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Days = 0
	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.HTTP.BasePath = "social"
	assert.Error(t, cfg.Validate())
}

func TestSourceConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.False(t, cfg.Source.Remote())

	require.NoError(t, cfg.ApplyEnv(lookupFrom(map[string]string{
		"SOCIALDASH_SOURCE_URL":     "https://analytics.example.com/v1",
		"SOCIALDASH_SOURCE_TIMEOUT": "2s",
	})))
	assert.True(t, cfg.Source.Remote())
	assert.Equal(t, 2*time.Second, cfg.Source.Timeout)
	require.NoError(t, cfg.Validate())

	cfg.Source.URL = "not a url"
	assert.Error(t, cfg.Validate())
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SOCIALDASH_TEST_LOADENV=yes\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SOCIALDASH_TEST_LOADENV") })

	loaded := LoadEnv(nil, path, filepath.Join(dir, "absent.env"))
	assert.Equal(t, []string{path}, loaded)
	assert.Equal(t, "yes", os.Getenv("SOCIALDASH_TEST_LOADENV"))
}

func TestLogger(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Log.Level = "debug"
	logger := cfg.Logger()
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	_, isJSON := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	cfg.Log.Format = FormatText
	_, isText := cfg.Logger().Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}

func TestMetricsConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.True(t, cfg.Metrics.Enabled)

	require.NoError(t, cfg.ApplyEnv(lookupFrom(map[string]string{"SOCIALDASH_METRICS_ENABLED": "false"})))
	assert.False(t, cfg.Metrics.Enabled)
	cfg.Metrics.Addr = ""
	assert.NoError(t, cfg.Validate(), "addr only required when enabled")

	cfg.Metrics.Enabled = true
	assert.Error(t, cfg.Validate())
}
