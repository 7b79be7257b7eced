package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
)

// LoadEnv reads .env into the process environment if the file exists.
// Variables already set take precedence.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		slog.Warn("could not load .env file", "error", err)
	}
}
