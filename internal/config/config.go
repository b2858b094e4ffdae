package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the server process.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string
	// StaticDir is the directory probed at startup for pre-built
	// single-page application assets.
	StaticDir string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; variables already
// set in the real environment take precedence over file values.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:      getenv("PORT", "8080"),
		StaticDir: getenv("STATIC_DIR", "static"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
