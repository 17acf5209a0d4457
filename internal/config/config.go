package config

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const DefaultAPIBaseURL = "https://grooviti-backend.onrender.com"

type Config struct {
	APIBaseURL  string
	Environment string
	LogLevel    string
	HTTPTimeout time.Duration
	ReadRetries uint64
	SessionDir  string

	// payment checkout
	PaymentKey      string
	PaymentSecret   string
	PaymentCurrency string
	MerchantName    string

	// dev backend
	Port        string
	JWTSecret   string
	CORSOrigins []string
}

func LoadConfig() (*Config, error) {
	timeout, err := time.ParseDuration(getEnvWithDefault("HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("HTTP_TIMEOUT: %v", err)
	}
	retries, err := strconv.ParseUint(getEnvWithDefault("READ_RETRIES", "3"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("READ_RETRIES: %v", err)
	}

	cfg := &Config{
		APIBaseURL:      strings.TrimRight(getEnvWithDefault("GROOVITI_API_BASE_URL", DefaultAPIBaseURL), "/"),
		Environment:     getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:        getEnvWithDefault("LOG_LEVEL", "info"),
		HTTPTimeout:     timeout,
		ReadRetries:     retries,
		SessionDir:      getEnvWithDefault("SESSION_DIR", defaultSessionDir()),
		PaymentKey:      os.Getenv("PAYMENT_KEY"),
		PaymentSecret:   os.Getenv("PAYMENT_SECRET"),
		PaymentCurrency: getEnvWithDefault("PAYMENT_CURRENCY", "INR"),
		MerchantName:    getEnvWithDefault("MERCHANT_NAME", "Grooviti"),
		Port:            getEnvWithDefault("PORT", "8080"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		CORSOrigins:     strings.Split(getEnvWithDefault("CORS_ORIGINS", "http://localhost:8081"), ","),
	}

	// Validate required fields
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("GROOVITI_API_BASE_URL must be an absolute URL, got %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if cfg.IsProduction() && cfg.PaymentKey == "" {
		return nil, fmt.Errorf("PAYMENT_KEY is required")
	}
	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = "dev-secret"
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "grooviti", "session")
	}
	return filepath.Join(home, ".grooviti", "session")
}

// ValidateDevServer checks the settings only the dev backend reads.
func (c *Config) ValidateDevServer() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Logger writes JSON in production and human-readable text elsewhere.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level()}
	if c.IsProduction() {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c *Config) level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		if c.IsProduction() {
			return slog.LevelInfo
		}
		return slog.LevelDebug
	}
	return lvl
}
