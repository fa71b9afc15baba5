// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Catalog   CatalogConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Allowed CORS origins (default: *)
}

// DatabaseConfig holds persistence configuration.
type DatabaseConfig struct {
	// Driver selects the backing store: "sqlite" or "memory".
	Driver string
	// Path is the SQLite database file (ignored for the memory driver).
	Path string
}

// CatalogConfig holds tool catalog configuration.
type CatalogConfig struct {
	// SeedPath is a JSON catalog file loaded by the memory driver and by
	// cmd/seed. Optional for the sqlite driver.
	SeedPath string
	// WatchSeed reloads the memory store when the seed file changes.
	WatchSeed bool
}

// AuthConfig holds session authentication configuration.
type AuthConfig struct {
	// CookieName carries the session ID (default: nabdh_session).
	CookieName string
	// CookieSecure marks the cookie Secure; forced on in production.
	CookieSecure bool
}

// RateLimitConfig holds per-IP limits for credential endpoints.
type RateLimitConfig struct {
	AuthRPS   float64 // Requests per second against login/signup (default: 1)
	AuthBurst int     // Burst allowance (default: 5)
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	port := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins")
	dbDriver := flag.String("db-driver", "", "Database driver: sqlite or memory (default: sqlite)")
	dbPath := flag.String("db-path", "", "SQLite database file path")
	seedPath := flag.String("seed-path", "", "JSON catalog seed file")
	watchSeed := flag.String("watch-seed", "", "Reload memory store on seed file changes (default: false)")
	cookieName := flag.String("session-cookie", "", "Session cookie name (default: nabdh_session)")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port: getConfigValue(*port, "SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Driver: getConfigValue(*dbDriver, "DB_DRIVER", "sqlite"),
			Path:   getConfigValue(*dbPath, "DB_PATH", ""),
		},
		Catalog: CatalogConfig{
			SeedPath:  getConfigValue(*seedPath, "SEED_PATH", ""),
			WatchSeed: getBoolConfigValue(*watchSeed, "WATCH_SEED", false),
		},
		Auth: AuthConfig{
			CookieName: getConfigValue(*cookieName, "SESSION_COOKIE", "nabdh_session"),
		},
		RateLimit: RateLimitConfig{
			AuthRPS:   getFloatConfigValue("", "AUTH_RATE_RPS", 1),
			AuthBurst: getIntConfigValue("", "AUTH_RATE_BURST", 5),
		},
	}

	// Session cookies must be Secure outside development.
	cfg.Auth.CookieSecure = cfg.App.Environment == "production"

	// Parse CORS origins.
	origins := getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.Server.CORSOrigins = append(cfg.Server.CORSOrigins, o)
		}
	}

	// Parse server timeouts.
	var err error
	if cfg.Server.ReadTimeout, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	// Expand and default the database path.
	if err := cfg.expandDatabasePath(); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("database path cannot be empty after expansion")
		}
	case "memory":
		if c.Catalog.SeedPath == "" {
			return errors.New("memory driver requires SEED_PATH")
		}
	default:
		return fmt.Errorf("invalid database driver: %s (must be sqlite or memory)", c.Database.Driver)
	}

	if c.RateLimit.AuthRPS <= 0 || c.RateLimit.AuthBurst <= 0 {
		return errors.New("auth rate limit must be positive")
	}

	return nil
}

// expandDatabasePath expands ~ and makes the path absolute.
// Defaults to ~/Nabdh/nabdh.db for the sqlite driver.
func (c *Config) expandDatabasePath() error {
	if c.Database.Driver != "sqlite" {
		return nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "Nabdh", "nabdh.db")

	expanded, err := expandPath(c.Database.Path, defaultPath)
	if err != nil {
		return err
	}
	c.Database.Path = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts "true", "1", "yes" (case-insensitive) as true.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	switch strings.ToLower(strValue) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return n
}

// getFloatConfigValue returns a float64 from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

// parseDurationValue resolves a duration with the standard precedence.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	s := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, s, err)
	}
	return d, nil
}

// loadEnvFile loads KEY=VALUE pairs from a file into the environment.
// Existing environment variables are not overwritten.
func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)

		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}
