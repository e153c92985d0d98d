package config

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/sieben/fyyd-go/fyyd"
)

// Config holds all environment-based configuration for the fyyd CLI.
type Config struct {
	// OAuth2 client registration. All three must be set together;
	// without them the CLI runs in unauthenticated mode and account
	// commands are unavailable.
	ClientID     string `env:"FYYD_CLIENT_ID"`
	ClientSecret string `env:"FYYD_CLIENT_SECRET"`
	RedirectURI  string `env:"FYYD_REDIRECT_URI"`

	// HTTP transport timeout for all API calls.
	HTTPTimeout time.Duration `env:"FYYD_HTTP_TIMEOUT" envDefault:"30s"`

	// Environment controls log format
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// LogLevel: debug, info, warn, or error. Debug makes swallowed
	// directory-read failures visible.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// warnInsecureEnvFile checks whether the .env file (if present) has
// overly permissive permissions. On Unix systems, group or world
// readable files risk exposing the OAuth client secret to other users.
func warnInsecureEnvFile() {
	if runtime.GOOS == "windows" {
		return
	}

	info, err := os.Stat(".env")
	if err != nil {
		return // file does not exist, nothing to check
	}

	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		log.Printf("WARNING: .env file has insecure permissions %04o; recommended 0600", mode)
	}
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	warnInsecureEnvFile()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	// The OAuth triple is all-or-none: a partial registration would
	// pass the authorization URL step and then fail at code exchange.
	set := 0
	for _, v := range []string{c.ClientID, c.ClientSecret, c.RedirectURI} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		return fmt.Errorf("FYYD_CLIENT_ID, FYYD_CLIENT_SECRET and FYYD_REDIRECT_URI must be set together")
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("FYYD_HTTP_TIMEOUT must be positive")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	return nil
}

// OAuthConfigured returns true when the client registration triple is set.
func (c *Config) OAuthConfigured() bool {
	return c.ClientID != ""
}

// Credentials returns the OAuth2 credentials for the library client.
func (c *Config) Credentials() fyyd.Credentials {
	return fyyd.Credentials{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURI:  c.RedirectURI,
	}
}

// IsProduction returns true when the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
