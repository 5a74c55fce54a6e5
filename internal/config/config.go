package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

const (
	// DefaultStorePath is the CSV store used when none is configured.
	DefaultStorePath = "extracted_data.csv"
	// DefaultDownloadDir receives downloaded copies, away from the live store.
	DefaultDownloadDir = "downloads"
	// DefaultDownloadName is the file name offered for download.
	DefaultDownloadName = "extracted_data.csv"
)

var once sync.Once

// LoadEnv loads a .env file from the working directory or its parent, once.
// It returns the file it loaded, or "" when none was found.
func LoadEnv() string {
	var loaded string
	once.Do(func() {
		for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := godotenv.Load(candidate); err == nil {
				loaded = candidate
			}
			return
		}
	})
	return loaded
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
