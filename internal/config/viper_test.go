package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var testEnvVars = []string{
	"DOCCSV_LOG_LEVEL",
	"DOCCSV_LOG_FORMAT",
	"DOCCSV_LOG_FILE",
	"DOCCSV_STORE_PATH",
	"DOCCSV_STORE_DELIMITER",
	"DOCCSV_DOWNLOAD_DIRECTORY",
	"DOCCSV_DOWNLOAD_FILE_NAME",
	"DOCCSV_DOWNLOAD_XLSX_ENABLED",
	"DOCCSV_EXTRACTION_STRICT_UNSUPPORTED",
	"DOCCSV_EXTRACTION_MAX_FILE_SIZE_MB",
}

// clearTestEnvVars blanks overrides for the duration of the test. t.Setenv
// restores the previous values afterwards.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range testEnvVars {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// chdir switches to dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(original))
	})
}

func writeYAMLConfig(t *testing.T, path string, cfg Config) {
	t.Helper()
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))
}

func validConfig() Config {
	return Config{
		Log:        LogConfig{Level: "info", Format: "text", File: "app.log"},
		Store:      StoreConfig{Path: "extracted_data.csv", Delimiter: ","},
		Download:   DownloadConfig{Directory: "downloads", FileName: "extracted_data.csv"},
		Extraction: ExtractionConfig{MaxFileSizeMB: 50},
	}
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "doc-extract-csv.log", config.Log.File)
	assert.Equal(t, "extracted_data.csv", config.Store.Path)
	assert.Equal(t, ",", config.Store.Delimiter)
	assert.Equal(t, "downloads", config.Download.Directory)
	assert.Equal(t, "extracted_data.csv", config.Download.FileName)
	assert.False(t, config.Download.XLSXEnabled)
	assert.False(t, config.Extraction.StrictUnsupported)
	assert.Equal(t, 50, config.Extraction.MaxFileSizeMB)
	assert.Equal(t, int64(50*1024*1024), config.MaxFileSizeBytes())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	t.Setenv("DOCCSV_LOG_LEVEL", "debug")
	t.Setenv("DOCCSV_LOG_FORMAT", "json")
	t.Setenv("DOCCSV_STORE_PATH", "out/records.csv")
	t.Setenv("DOCCSV_STORE_DELIMITER", ";")
	t.Setenv("DOCCSV_EXTRACTION_STRICT_UNSUPPORTED", "true")
	t.Setenv("DOCCSV_EXTRACTION_MAX_FILE_SIZE_MB", "5")

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "out/records.csv", config.Store.Path)
	assert.Equal(t, ";", config.Store.Delimiter)
	assert.True(t, config.Extraction.StrictUnsupported)
	assert.Equal(t, 5, config.Extraction.MaxFileSizeMB)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	chdir(t, dir)

	cfg := validConfig()
	cfg.Log.Level = "warn"
	cfg.Store.Delimiter = "|"
	cfg.Download.XLSXEnabled = true
	cfg.Extraction.StrictUnsupported = true
	writeYAMLConfig(t, filepath.Join(dir, "config.yaml"), cfg)

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "|", config.Store.Delimiter)
	assert.True(t, config.Download.XLSXEnabled)
	assert.True(t, config.Extraction.StrictUnsupported)
}

func TestInitializeConfig_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.yaml")
	cfg := validConfig()
	cfg.Store.Path = "/data/records.csv"
	writeYAMLConfig(t, path, cfg)

	config, err := InitializeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/records.csv", config.Store.Path)
}

func TestInitializeConfig_ExplicitFileMissing(t *testing.T) {
	clearTestEnvVars(t)

	_, err := InitializeConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	dir := t.TempDir()
	chdir(t, dir)

	cfg := validConfig()
	cfg.Log.Level = "warn"
	cfg.Store.Delimiter = "|"
	writeYAMLConfig(t, filepath.Join(dir, "config.yaml"), cfg)

	t.Setenv("DOCCSV_LOG_LEVEL", "error")

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)   // env var wins
	assert.Equal(t, "|", config.Store.Delimiter) // config file value
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "loud" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "xml" },
			expectError:  "invalid log format",
		},
		{
			name:         "empty store path",
			modifyConfig: func(c *Config) { c.Store.Path = "  " },
			expectError:  "store.path must not be empty",
		},
		{
			name:         "multi character delimiter",
			modifyConfig: func(c *Config) { c.Store.Delimiter = ";;" },
			expectError:  "store delimiter must be a single character",
		},
		{
			name:         "quote delimiter",
			modifyConfig: func(c *Config) { c.Store.Delimiter = "\"" },
			expectError:  "is not allowed",
		},
		{
			name:         "empty download name",
			modifyConfig: func(c *Config) { c.Download.FileName = "" },
			expectError:  "download.file_name must not be empty",
		},
		{
			name: "download overwrites store",
			modifyConfig: func(c *Config) {
				c.Download.Directory = "."
				c.Download.FileName = "extracted_data.csv"
				c.Store.Path = "./extracted_data.csv"
			},
			expectError: "download path must differ from store.path",
		},
		{
			name: "download overwrites store through relative segments",
			modifyConfig: func(c *Config) {
				c.Download.Directory = "data/../data"
				c.Download.FileName = "records.csv"
				c.Store.Path = "data/records.csv"
			},
			expectError: "download path must differ from store.path",
		},
		{
			name:         "zero size limit",
			modifyConfig: func(c *Config) { c.Extraction.MaxFileSizeMB = 0 },
			expectError:  "extraction.max_file_size_mb must be between 1 and 1024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(&config)

			err := validateConfig(&config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}

	t.Run("valid config passes", func(t *testing.T) {
		config := validConfig()
		assert.NoError(t, validateConfig(&config))
	})
}

func TestNewLoggerFromConfig(t *testing.T) {
	config := validConfig()
	config.Log.Format = "json"

	logger := NewLoggerFromConfig(&config, nil)
	assert.NotNil(t, logger)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("DOCCSV_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("DOCCSV_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("DOCCSV_TEST_MISSING_VALUE", "fallback"))
}
