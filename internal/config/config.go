// Package config reads application configuration from the environment.
package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the application.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// WebDir is the directory the SPA is served from.
	WebDir string
	// DatabaseURL is the PostgreSQL connection string. Empty selects the
	// in-memory store, for local development only.
	DatabaseURL string

	// SessionPurgeInterval controls how often expired sessions are removed.
	SessionPurgeInterval time.Duration

	// OIDC SSO settings; SSO is enabled when IssuerURL is set.
	OIDCIssuerURL    string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
}

// Load reads configuration from the environment with sensible defaults. A
// .env file in the working directory is honoured when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: skipping .env: %v", err)
	}

	cfg := &Config{
		Addr:        getenvDefault("ADDR", ":8080"),
		WebDir:      getenvDefault("WEB_DIR", "web"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		OIDCIssuerURL:    os.Getenv("OIDC_ISSUER_URL"),
		OIDCClientID:     os.Getenv("OIDC_CLIENT_ID"),
		OIDCClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		OIDCRedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
	}

	purgeStr := getenvDefault("SESSION_PURGE_INTERVAL", "1h")
	purge, err := time.ParseDuration(purgeStr)
	if err != nil {
		return nil, err
	}
	cfg.SessionPurgeInterval = purge

	return cfg, nil
}

// SSOEnabled reports whether OIDC login should be wired up.
func (c *Config) SSOEnabled() bool {
	return c.OIDCIssuerURL != ""
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
