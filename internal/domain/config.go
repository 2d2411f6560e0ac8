package domain

import (
	"fmt"
	"time"
)

// ConfigFileName is the config file name inside the data directory.
const ConfigFileName = "config.toml"

// Config holds the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Timezone string `toml:"timezone"` // IANA zone name for all wall-clock arithmetic

	Store struct {
		Backend string `toml:"backend"` // "json" (default) or "sql"
		Path    string `toml:"path"`    // JSON store path ("" = <data dir>/tasks.json)
		DSN     string `toml:"dsn"`     // MySQL DSN for the sql backend
	} `toml:"store"`

	Remind struct {
		CadenceSeconds int `toml:"cadence_seconds"` // Scan interval
		DigestHour     int `toml:"digest_hour"`     // Local hour of the daily digest
		DigestMinute   int `toml:"digest_minute"`
	} `toml:"remind"`

	Notify struct {
		Backend    string `toml:"backend"`     // "console" (default) or "webhook"
		WebhookURL string `toml:"webhook_url"` // Delivery endpoint for the webhook backend
		Language   string `toml:"language"`    // Message catalog language tag
	} `toml:"notify"`

	Channel struct {
		Listen    string `toml:"listen"`     // HTTP command channel address ("" = disabled)
		JWTSecret string `toml:"jwt_secret"` // HS256 secret; token subject is the owner ID
	} `toml:"channel"`

	Transcriber struct {
		URL string `toml:"url"` // Transcription service endpoint ("" = disabled)
	} `toml:"transcriber"`

	LogLevel string `toml:"log_level"`
}

// NewDefaultConfig returns a Config populated with defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Timezone = "Local"
	cfg.Store.Backend = "json"
	cfg.Remind.CadenceSeconds = 60
	cfg.Remind.DigestHour = 8
	cfg.Remind.DigestMinute = 0
	cfg.Notify.Backend = "console"
	cfg.Notify.Language = "en"
	cfg.LogLevel = "info"
	return cfg
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Cadence returns the reminder scan interval.
func (c *Config) Cadence() time.Duration {
	secs := c.Remind.CadenceSeconds
	if secs <= 0 {
		secs = 60
	}
	return time.Duration(secs) * time.Second
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "json", "sql":
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Backend == "sql" && c.Store.DSN == "" {
		return fmt.Errorf("store backend %q requires a dsn", c.Store.Backend)
	}
	switch c.Notify.Backend {
	case "console", "webhook":
	default:
		return fmt.Errorf("unknown notify backend %q", c.Notify.Backend)
	}
	if c.Notify.Backend == "webhook" && c.Notify.WebhookURL == "" {
		return fmt.Errorf("notify backend %q requires a webhook_url", c.Notify.Backend)
	}
	if c.Remind.DigestHour < 0 || c.Remind.DigestHour > 23 {
		return fmt.Errorf("digest_hour %d out of range", c.Remind.DigestHour)
	}
	if c.Remind.DigestMinute < 0 || c.Remind.DigestMinute > 59 {
		return fmt.Errorf("digest_minute %d out of range", c.Remind.DigestMinute)
	}
	return nil
}
