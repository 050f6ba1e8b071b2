package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the runtime configuration assembled from the environment.
type Config struct {
	// DBPath overrides the default report database location.
	DBPath string

	// Env selects logger defaults: "development" or "production".
	Env string

	LogLevel string
	LogFile  string

	// CatalogDir, when set, replaces the built-in instruments with the
	// files found in this directory.
	CatalogDir string

	// AMQPURL enables the escalation notifier when non-empty.
	AMQPURL         string
	EscalationQueue string

	// HistoryKeep caps stored reports; 0 keeps everything.
	HistoryKeep int

	// SaveReports controls whether completed reports are persisted.
	SaveReports bool
}

// Load reads an optional .env file (or the given files) and then the
// process environment. Variables already set in the environment win over
// values from the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the process environment only.
func FromEnv() *Config {
	return &Config{
		DBPath:          GetEnvString("WELLCHECK_DB", ""),
		Env:             GetEnvString("WELLCHECK_ENV", EnvProduction),
		LogLevel:        GetEnvString("WELLCHECK_LOG_LEVEL", "info"),
		LogFile:         GetEnvString("WELLCHECK_LOG_FILE", ""),
		CatalogDir:      GetEnvString("WELLCHECK_CATALOG_DIR", ""),
		AMQPURL:         GetEnvString("WELLCHECK_AMQP_URL", ""),
		EscalationQueue: GetEnvString("WELLCHECK_ESCALATION_QUEUE", "wellcheck.escalations"),
		HistoryKeep:     GetEnvInt("WELLCHECK_HISTORY_KEEP", 0),
		SaveReports:     GetEnvBool("WELLCHECK_SAVE_REPORTS", true),
	}
}

// IsDevelopment reports whether Env is "development".
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}
