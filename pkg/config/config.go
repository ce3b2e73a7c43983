package config

import (
	"os"
	"strings"
)

// Config carries all runtime settings, loaded once at startup
type Config struct {
	Port         string
	Env          string
	PostgresURL  string
	JWTSecret    string
	StorageDir   string
	AvatarStyles []string
	LogLevel     string
	LogPath      string
}

// Load reads configuration from the environment
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		PostgresURL:  getEnv("POSTGRES_CONN_STR", ""),
		JWTSecret:    getEnv("JWT_SECRET", "supersecretjwtkey"),
		StorageDir:   getEnv("STORAGE_DIR", "./storage"),
		AvatarStyles: getEnvList("AVATAR_STYLES", "adventurer,micah,avataaars,pixel-art"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogPath:      getEnv("LOG_PATH", ""),
	}
}

// IsProduction reports whether the server runs with production settings
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
