package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3002", cfg.APIURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "catalog.log", cfg.LogFile)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Zero(t, cfg.HTTPMaxRetries)
	assert.True(t, cfg.BreakerEnabled)
	assert.Equal(t, 3*time.Second, cfg.NotifyDuration)
	assert.Equal(t, 3002, cfg.Stub.HTTPPort)
	assert.Empty(t, cfg.Stub.SeedFile)
	assert.Equal(t, "product-catalog", cfg.Tracing.ServiceName)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"CATALOG_API_URL":          "http://catalog.internal:8080",
		"CATALOG_HTTP_TIMEOUT":     "5s",
		"CATALOG_HTTP_MAX_RETRIES": "2",
		"CATALOG_BREAKER_ENABLED":  "false",
		"CATALOG_NOTIFY_DURATION":  "1500ms",
		"STUB_HTTP_PORT":           "8080",
		"STUB_SEED_FILE":           "db.json",
		"OTEL_ENABLED":             "true",
	})
	require.NoError(t, err)

	assert.Equal(t, "http://catalog.internal:8080", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.HTTPMaxRetries)
	assert.False(t, cfg.BreakerEnabled)
	assert.Equal(t, 1500*time.Millisecond, cfg.NotifyDuration)
	assert.Equal(t, 8080, cfg.Stub.HTTPPort)
	assert.Equal(t, "db.json", cfg.Stub.SeedFile)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"relative api url", map[string]string{"CATALOG_API_URL": "localhost"}},
		{"negative retries", map[string]string{"CATALOG_HTTP_MAX_RETRIES": "-1"}},
		{"port out of range", map[string]string{"STUB_HTTP_PORT": "70000"}},
		{"failure ratio", map[string]string{"CATALOG_CB_FAILURE_RATIO": "0"}},
		{"sample rate", map[string]string{"OTEL_SAMPLE_RATE": "2"}},
		{"bad duration", map[string]string{"CATALOG_HTTP_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.env)
			assert.Error(t, err)
		})
	}
}
