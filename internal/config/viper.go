// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"fjacquet/doc-extract-csv/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DOCCSV_STORE_PATH.
const EnvPrefix = "DOCCSV"

// LogConfig controls the application logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	// File receives log output while the interactive session owns the terminal.
	File string `mapstructure:"file" yaml:"file"`
}

// StoreConfig locates the CSV store.
type StoreConfig struct {
	Path      string `mapstructure:"path" yaml:"path"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// DownloadConfig controls how the store is handed back to the operator.
type DownloadConfig struct {
	Directory   string `mapstructure:"directory" yaml:"directory"`
	FileName    string `mapstructure:"file_name" yaml:"file_name"`
	XLSXEnabled bool   `mapstructure:"xlsx_enabled" yaml:"xlsx_enabled"`
}

// ExtractionConfig controls the extraction dispatcher.
type ExtractionConfig struct {
	// StrictUnsupported reports unsupported extensions as errors instead of
	// skipping them.
	StrictUnsupported bool `mapstructure:"strict_unsupported" yaml:"strict_unsupported"`
	MaxFileSizeMB     int  `mapstructure:"max_file_size_mb" yaml:"max_file_size_mb"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Store      StoreConfig      `mapstructure:"store" yaml:"store"`
	Download   DownloadConfig   `mapstructure:"download" yaml:"download"`
	Extraction ExtractionConfig `mapstructure:"extraction" yaml:"extraction"`
}

// MaxFileSizeBytes returns the upload size limit in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Extraction.MaxFileSizeMB) * 1024 * 1024
}

// InitializeConfig loads configuration from defaults, an optional config file and
// the environment, in increasing order of precedence. An empty configFile searches
// the standard locations.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.doc-extract-csv")
		v.AddConfigPath(".doc-extract-csv")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "doc-extract-csv.log")

	v.SetDefault("store.path", DefaultStorePath)
	v.SetDefault("store.delimiter", ",")

	v.SetDefault("download.directory", DefaultDownloadDir)
	v.SetDefault("download.file_name", DefaultDownloadName)
	v.SetDefault("download.xlsx_enabled", false)

	v.SetDefault("extraction.strict_unsupported", false)
	v.SetDefault("extraction.max_file_size_mb", 50)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(strings.ToLower(config.Log.Level)); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if strings.TrimSpace(config.Store.Path) == "" {
		return fmt.Errorf("store.path must not be empty")
	}

	if utf8.RuneCountInString(config.Store.Delimiter) != 1 {
		return fmt.Errorf("store delimiter must be a single character, got: %q", config.Store.Delimiter)
	}
	switch config.Store.Delimiter {
	case "\"", "\r", "\n":
		return fmt.Errorf("store delimiter %q is not allowed", config.Store.Delimiter)
	}

	if strings.TrimSpace(config.Download.FileName) == "" {
		return fmt.Errorf("download.file_name must not be empty")
	}

	if samePath(filepath.Join(config.Download.Directory, config.Download.FileName), config.Store.Path) {
		return fmt.Errorf("download path must differ from store.path: %s", config.Store.Path)
	}

	if config.Extraction.MaxFileSizeMB < 1 || config.Extraction.MaxFileSizeMB > 1024 {
		return fmt.Errorf("extraction.max_file_size_mb must be between 1 and 1024, got: %d", config.Extraction.MaxFileSizeMB)
	}

	return nil
}

// samePath reports whether a and b name the same file once made absolute.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// NewLoggerFromConfig builds the application logger. A nil out writes to stderr.
func NewLoggerFromConfig(config *Config, out io.Writer) logging.Logger {
	return logging.NewLogrusAdapterWithOutput(config.Log.Level, config.Log.Format, out)
}
