package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"FETCH_MODE", "FETCH_TIMEOUT", "HTTP_ADDR", "COMPARE_CONCURRENCY", "LOG_PRETTY", "CATALOG_PATH"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, FetchModeHTTP, cfg.FetchMode)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 4, cfg.CompareConcurrency)
	assert.True(t, cfg.LogPretty)
	assert.Empty(t, cfg.CatalogPath)
	assert.Contains(t, cfg.AcceptLanguage, "nb-NO")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FETCH_MODE", FetchModeBrowser)
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("COMPARE_CONCURRENCY", "8")
	t.Setenv("LOG_PRETTY", "false")

	cfg := Load()

	assert.Equal(t, FetchModeBrowser, cfg.FetchMode)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 8, cfg.CompareConcurrency)
	assert.False(t, cfg.LogPretty)
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"", 10 * time.Second},
		{"15", 15 * time.Second},
		{"250ms", 250 * time.Millisecond},
		{"soon", 10 * time.Second},
		{"-5s", 10 * time.Second},
	}

	for _, tt := range tests {
		t.Setenv("TEST_TIMEOUT", tt.raw)
		got := getEnvDuration("TEST_TIMEOUT", 10*time.Second)
		if got != tt.want {
			t.Errorf("getEnvDuration(%q) = %v; want %v", tt.raw, got, tt.want)
		}
	}
}

func TestGetEnvIntInvalidFallsBack(t *testing.T) {
	t.Setenv("TEST_INT", "many")
	assert.Equal(t, 3, getEnvInt("TEST_INT", 3))
}
