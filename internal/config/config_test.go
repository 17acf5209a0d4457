package config

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GROOVITI_API_BASE_URL", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("READ_RETRIES", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, uint64(3), cfg.ReadRetries)
	assert.Equal(t, "INR", cfg.PaymentCurrency)
	assert.Equal(t, "dev-secret", cfg.JWTSecret)
}

func TestLoadConfigTrimsBaseURL(t *testing.T) {
	t.Setenv("GROOVITI_API_BASE_URL", "http://localhost:8080/")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
}

func TestLoadConfigRejectsRelativeBaseURL(t *testing.T) {
	t.Setenv("GROOVITI_API_BASE_URL", "localhost")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigProductionRequiresPaymentKey(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PAYMENT_KEY", "")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.EqualError(t, err, "PAYMENT_KEY is required")

	// the terminal client never signs tokens
	t.Setenv("PAYMENT_KEY", "rzp_test_key")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Empty(t, cfg.JWTSecret)
}

func TestValidateDevServer(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PAYMENT_KEY", "rzp_test_key")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.EqualError(t, cfg.ValidateDevServer(), "JWT_SECRET is required")

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.NoError(t, cfg.ValidateDevServer())

	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", "")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.NoError(t, cfg.ValidateDevServer())
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	(&Config{Environment: "production", LogLevel: "info"}).Logger(&buf).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	logger := (&Config{Environment: "development", LogLevel: "warn"}).Logger(&buf)
	logger.Info("dropped")
	logger.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "msg=kept")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
}
