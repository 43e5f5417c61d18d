package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"ENVIRONMENT", "ENV", "SERVICE_NAME", "LOG_LEVEL", "SERVICE_VERSION",
	"HTTP_TIMEOUT", "HTTP_USER_AGENT", "HTTP_MAX_SIZE",
	"STORAGE_TIMEOUT", "STORAGE_MAX_RETRIES", "STORAGE_S3_REGION", "AWS_REGION",
	"AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "S3_ENDPOINT", "S3_USE_PATH_STYLE",
	"PROGRESS_MODE", "PROGRESS_INTERVAL", "METRICS_FILE",
}

// clearEnv unsets every key the parser reads and restores them afterwards.
// godotenv never overrides a variable that is present, even when empty,
// so t.Setenv("", ...) is not enough here.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, old) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestProvider_Singleton(t *testing.T) {
	instance = nil
	once = sync.Once{}

	provider1 := GetProvider()
	provider2 := GetProvider()

	assert.Same(t, provider1, provider2, "should return same instance")
}

func TestProvider_LoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	p := &Provider{}
	require.NoError(t, p.Load())

	cfg := mustGet(t, p)
	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "fetchlink", cfg.ServiceName)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 120*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "fetchlink/1.0.0", cfg.HTTP.UserAgent)
	assert.Equal(t, int64(0), cfg.HTTP.MaxSize)
	assert.Equal(t, ProgressAuto, cfg.Progress.Mode)
	assert.Equal(t, 200*time.Millisecond, cfg.Progress.Interval)
	assert.False(t, cfg.S3Enabled())
}

func TestProvider_LoadFromEnv(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("HTTP_MAX_SIZE", "1024")
	t.Setenv("PROGRESS_MODE", "line")
	t.Setenv("AWS_REGION", "eu-west-1")

	p := &Provider{}
	require.NoError(t, p.Load())

	cfg := mustGet(t, p)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, int64(1024), cfg.HTTP.MaxSize)
	assert.Equal(t, ProgressLine, cfg.Progress.Mode)
	assert.Equal(t, "eu-west-1", cfg.Storage.S3.Region)
	assert.True(t, cfg.S3Enabled())
}

func TestProvider_LoadEnvFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("ENVIRONMENT=staging\nHTTP_USER_AGENT=from-dotenv\nMETRICS_FILE=base.prom\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.staging"),
		[]byte("METRICS_FILE=staging.prom\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"),
		[]byte("PROGRESS_MODE=none\n"), 0o644))

	p := &Provider{}
	require.NoError(t, p.Load())

	cfg := mustGet(t, p)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "from-dotenv", cfg.HTTP.UserAgent)
	assert.Equal(t, "staging.prom", cfg.Metrics.File)
	assert.Equal(t, ProgressNone, cfg.Progress.Mode)
}

func TestProvider_LoadInvalid(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("PROGRESS_MODE", "fancy")

	p := &Provider{}
	err := p.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROGRESS_MODE")
	_, getErr := p.Get()
	assert.Error(t, getErr)
}

func TestProvider_GetBeforeLoad(t *testing.T) {
	p := &Provider{}

	cfg, err := p.Get()
	assert.Nil(t, cfg)
	assert.Error(t, err)
}

func TestProvider_LoadIsIdempotentUntilReset(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	p := &Provider{}
	require.NoError(t, p.Load())
	assert.Equal(t, 120*time.Second, mustGet(t, p).HTTP.Timeout)

	t.Setenv("HTTP_TIMEOUT", "9s")
	require.NoError(t, p.Load())
	assert.Equal(t, 120*time.Second, mustGet(t, p).HTTP.Timeout)

	p.Reset()
	_, err := p.Get()
	assert.Error(t, err)

	require.NoError(t, p.Load())
	assert.Equal(t, 9*time.Second, mustGet(t, p).HTTP.Timeout)
}

func mustGet(t *testing.T, p *Provider) *Config {
	t.Helper()
	cfg, err := p.Get()
	require.NoError(t, err)
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing service name",
			mutate:  func(c *Config) { c.ServiceName = "" },
			wantErr: "SERVICE_NAME is required",
		},
		{
			name:    "zero http timeout",
			mutate:  func(c *Config) { c.HTTP.Timeout = 0 },
			wantErr: "HTTP_TIMEOUT must be positive",
		},
		{
			name:    "negative max size",
			mutate:  func(c *Config) { c.HTTP.MaxSize = -1 },
			wantErr: "HTTP_MAX_SIZE cannot be negative",
		},
		{
			name:    "half of the static credentials",
			mutate:  func(c *Config) { c.Storage.S3.AccessKeyID = "AKIA" },
			wantErr: "must be set together",
		},
		{
			name:    "unknown progress mode",
			mutate:  func(c *Config) { c.Progress.Mode = "fancy" },
			wantErr: "PROGRESS_MODE",
		},
		{
			name: "errors are aggregated",
			mutate: func(c *Config) {
				c.ServiceName = ""
				c.Storage.MaxRetries = -1
			},
			wantErr: "SERVICE_NAME is required; STORAGE_MAX_RETRIES cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Environment(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.IsProduction())

	cfg.Environment = "PROD"
	assert.True(t, cfg.IsProduction())

	cfg.LogLevel = "debug"
	cfg.applyDefaults()
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestGetDuration_Fallback(t *testing.T) {
	t.Setenv("SOME_DURATION", "not-a-duration")
	assert.Equal(t, 3*time.Second, getDuration("SOME_DURATION", "3s"))

	t.Setenv("SOME_DURATION", "250ms")
	assert.Equal(t, 250*time.Millisecond, getDuration("SOME_DURATION", "3s"))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
