package main

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
)

// loadDotEnv reads .env.local then .env from the working directory.
// Variables already set in the environment win.
func loadDotEnv() {
	for _, p := range []string{".env.local", ".env"} {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			slog.Warn("dotenv load failed", slog.String("path", p), slog.Any("error", err))
		}
	}
}
