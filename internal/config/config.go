// Package config loads application settings from an optional .env file,
// environment variables and an optional YAML config file, in that order of
// discovery with the environment winning.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"fjacquet/statement-ledger/internal/logging"
)

// Config is the full application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Data   DataConfig   `mapstructure:"data"`
	Ingest IngestConfig `mapstructure:"ingest"`
	AI     AIConfig     `mapstructure:"ai"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DataConfig locates the on-disk store.
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// IngestConfig tunes batch ingestion.
type IngestConfig struct {
	// MaxBatchSize caps files per ingest call. Zero means the engine
	// default.
	MaxBatchSize int `mapstructure:"max_batch_size"`
}

// AIConfig configures the category suggestion client.
type AIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Load reads configuration. A .env file in the working directory is
// loaded first when present, then LEDGER_* environment variables, then an
// optional ledger.yaml next to the data directory.
func Load() (*Config, error) {
	// Missing .env files are the normal case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("data.dir", defaultDataDir())
	v.SetDefault("ingest.max_batch_size", 0)
	// Empty defaults register the keys so AutomaticEnv can fill them.
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-2.0-flash")

	v.SetConfigName("ledger")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(v.GetString("data.dir"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// ConfigureLogging installs the default logger per the log settings.
func ConfigureLogging(cfg *Config) logging.Logger {
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	logging.SetDefault(logger)
	return logger
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".statement-ledger"
	}
	return filepath.Join(home, ".statement-ledger")
}
