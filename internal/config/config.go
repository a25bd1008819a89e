// Package config loads the importer configuration from defaults, an optional
// config file, environment variables and command line flags.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// envFiles are the .env locations tried by LoadEnv, in order.
var envFiles = []string{".env", filepath.Join("..", ".env")}

// LoadEnv loads the first .env file found into the process environment and
// returns its path, or "" when none exists. Variables already set are not
// overridden. Nothing is logged: it runs before logging is configured.
func LoadEnv() string {
	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return ""
		}
		return envFile
	}
	return ""
}
