// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultProfileBaseURL   = "https://github.com/"
	defaultTimeout          = 10 * time.Second
	defaultRateLimitMaxWait = time.Minute
	defaultListenAddr       = ":8080"
	defaultLogLevel         = "info"
)

// ErrAccountRequired is returned by Validate when no GitHub account is configured.
var ErrAccountRequired = errors.New("GITHUB_ACCOUNT is required")

// Config is the runtime configuration assembled by Load from the environment and an optional .env file.
type Config struct {
	// Account is the GitHub login whose panel is rendered.
	Account string
	// Token is optional; without it requests count against the anonymous rate limit.
	Token string
	// APIBaseURL overrides the REST endpoint (GitHub Enterprise, tests).
	APIBaseURL string
	// ProfileBaseURL prefixes Account in the fallback link shown when loading fails.
	ProfileBaseURL   string
	Timeout          time.Duration
	Concurrent       bool
	RateLimitMaxWait time.Duration
	ListenAddr       string
	LogLevel         string
}

// Load reads the .env file if present, then the environment.
// It does not validate; call Validate once flags have been applied.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	timeout, err := getEnvAsDuration("PANEL_TIMEOUT", defaultTimeout)
	if err != nil {
		return nil, err
	}
	maxWait, err := getEnvAsDuration("RATELIMIT_MAX_WAIT", defaultRateLimitMaxWait)
	if err != nil {
		return nil, err
	}
	concurrent, err := getEnvAsBool("PANEL_CONCURRENT", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		Account:          os.Getenv("GITHUB_ACCOUNT"),
		Token:            os.Getenv("GITHUB_TOKEN"),
		APIBaseURL:       os.Getenv("GITHUB_API_URL"),
		ProfileBaseURL:   getEnv("GITHUB_PROFILE_URL", defaultProfileBaseURL),
		Timeout:          timeout,
		Concurrent:       concurrent,
		RateLimitMaxWait: maxWait,
		ListenAddr:       getEnv("LISTEN_ADDR", defaultListenAddr),
		LogLevel:         getEnv("LOG_LEVEL", defaultLogLevel),
	}, nil
}

// Validate reports missing or inconsistent settings.
func (c *Config) Validate() error {
	if c.Account == "" {
		return ErrAccountRequired
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// FallbackProfileURL is the direct profile link shown when the panel cannot be loaded.
func (c *Config) FallbackProfileURL() string {
	return strings.TrimSuffix(c.ProfileBaseURL, "/") + "/" + c.Account
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}
