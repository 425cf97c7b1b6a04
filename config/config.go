// Package config loads the application configuration once at startup.
//
// Values come from the process environment, optionally seeded from a .env file
// in the working directory. The returned Config is treated as immutable and is
// handed to each module explicitly.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when the corresponding environment variable is unset.
const (
	DefaultPort            = "3000"
	DefaultOfficialEmail   = "ashu0052.be23@chitkara.edu.in"
	DefaultGeminiModel     = "gemini-1.5-flash"
	DefaultGeminiEndpoint  = "https://generativelanguage.googleapis.com/v1beta"
	DefaultAITimeout       = 10 * time.Second
	DefaultRequestTimeout  = 15 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultCORSOrigins     = "*"
	DefaultLogLevel        = "info"
)

// Config holds every externally supplied setting of the application.
type Config struct {
	Port          string
	OfficialEmail string

	GeminiAPIKey   string
	GeminiModel    string
	GeminiEndpoint string

	AITimeout       time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	CORSAllowedOrigins string
	PublicDir          string
	LogLevel           string
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads .env (if present) and the environment into a Config.
func Load() (Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv files. Missing files are ignored;
// variables already present in the environment win over file values.
func LoadFiles(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return fromEnv()
}

func fromEnv() (Config, error) {
	cfg := Config{
		Port:               getEnv("PORT", DefaultPort),
		OfficialEmail:      getEnv("OFFICIAL_EMAIL", DefaultOfficialEmail),
		GeminiAPIKey:       strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:        getEnv("GEMINI_MODEL", DefaultGeminiModel),
		GeminiEndpoint:     strings.TrimRight(getEnv("GEMINI_ENDPOINT", DefaultGeminiEndpoint), "/"),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", DefaultCORSOrigins),
		PublicDir:          os.Getenv("PUBLIC_DIR"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q", cfg.Port)
	}

	var err error
	if cfg.AITimeout, err = getEnvDuration("AI_TIMEOUT", DefaultAITimeout); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", DefaultRequestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration parses a Go duration ("10s", "1m30s") from the environment.
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
