package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env and .env.local when present. Variables already set in the process
// environment win.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			slog.Warn("Failed to load env file", "path", name, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", name)
	}
}
