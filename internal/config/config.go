// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all runtime settings. Values come from the environment,
// optionally seeded from a .env file by the caller.
type Config struct {
	// HTTP server
	Port string

	// Snapshot persistence. Empty disables persistence entirely; the
	// ledger then lives only in memory for the session.
	SQLiteDBPath string

	// Static UI directory served at /.
	StaticDir string

	// Explanation generator (OpenAI-compatible chat-completions
	// endpoint). Empty URL disables the external service; explanations
	// then always use the algorithmic fallback.
	ExplainAPIURL string
	ExplainAPIKey string
	ExplainModel  string
}

// Load reads the configuration from the environment with defaults.
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/divvy.db"),
		StaticDir:    getEnv("STATIC_DIR", "./web/static"),

		ExplainAPIURL: getEnv("EXPLAIN_API_URL", ""),
		ExplainAPIKey: getEnv("EXPLAIN_API_KEY", ""),
		ExplainModel:  getEnv("EXPLAIN_MODEL", "gpt-4o-mini"),
	}
}

// Validate checks the configuration and returns an error describing every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath != "" {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					problems = append(problems, fmt.Sprintf("cannot create database directory %q: %v", dir, err))
				}
			}
		}
	}

	if c.ExplainAPIURL != "" {
		u, err := url.Parse(c.ExplainAPIURL)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid explain API URL %q: %v", c.ExplainAPIURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			problems = append(problems, fmt.Sprintf("invalid explain API URL scheme %q: must be http or https", u.Scheme))
		}
		if c.ExplainModel == "" {
			problems = append(problems, "explain model cannot be empty when an explain API URL is set")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
