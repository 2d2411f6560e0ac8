// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/mkondo/taskping/internal/domain"
)

// Loader loads configuration from the data directory's TOML file with
// environment variable overrides. Precedence: defaults <- file <- env.
type Loader struct {
	dataDir string
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{dataDir: dataDir}
}

// Load returns the merged configuration.
func (l *Loader) Load() (*domain.Config, error) {
	_ = godotenv.Load(".env")

	cfg := domain.NewDefaultConfig()

	path := filepath.Join(l.dataDir, domain.ConfigFileName)
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if cfg.Store.Path == "" {
		cfg.Store.Path = filepath.Join(l.dataDir, "tasks.json")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *domain.Config) {
	setString(&cfg.Timezone, "TASKPING_TIMEZONE")
	setString(&cfg.Store.Backend, "TASKPING_STORE_BACKEND")
	setString(&cfg.Store.Path, "TASKPING_STORE_PATH")
	setString(&cfg.Store.DSN, "TASKPING_MYSQL_DSN")
	setInt(&cfg.Remind.CadenceSeconds, "TASKPING_CADENCE_SECONDS")
	setInt(&cfg.Remind.DigestHour, "TASKPING_DIGEST_HOUR")
	setInt(&cfg.Remind.DigestMinute, "TASKPING_DIGEST_MINUTE")
	setString(&cfg.Notify.Backend, "TASKPING_NOTIFY_BACKEND")
	setString(&cfg.Notify.WebhookURL, "TASKPING_WEBHOOK_URL")
	setString(&cfg.Notify.Language, "TASKPING_LANGUAGE")
	setString(&cfg.Channel.Listen, "TASKPING_LISTEN")
	setString(&cfg.Channel.JWTSecret, "TASKPING_JWT_SECRET")
	setString(&cfg.Transcriber.URL, "TASKPING_TRANSCRIBER_URL")
	setString(&cfg.LogLevel, "TASKPING_LOG_LEVEL")
}

func setString(dst *string, key string) {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string) {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			*dst = n
		}
	}
}
