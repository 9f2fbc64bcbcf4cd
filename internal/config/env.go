package config

import (
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env files in order of precedence. Missing files
// are fine; secrets may come from the real environment instead.
func loadEnvFiles() {
	envFiles := []string{
		".env.local", // Local overrides (highest precedence)
		".env",       // Main environment file
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			// godotenv never overwrites variables already set.
			_ = godotenv.Load(file)
		}
	}
}

// applyEnvOverrides maps well-known environment variables onto the
// config after file loading.
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if url := os.Getenv("KARMALOG_CREDITS_URL"); url != "" {
		cfg.Credits.URL = url
	}
	if path := os.Getenv("KARMALOG_STORE_PATH"); path != "" {
		cfg.Store.Path = path
	}
}
