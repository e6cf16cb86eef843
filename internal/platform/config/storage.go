package config

import (
	"fmt"
	"os"
)

// StorageConfig selects the persistence backends.
type StorageConfig struct {
	// Backend is "memory" or "postgres".
	Backend string
	// DatabaseURL is required when Backend is "postgres".
	DatabaseURL string

	// GameSaveBackend is "primary" (same store as Backend) or "redis".
	GameSaveBackend string
	// RedisURL is required when GameSaveBackend is "redis".
	RedisURL string
}

func LoadStorageConfigFromEnv() (StorageConfig, error) {
	cfg := StorageConfig{
		Backend:         getenvDefault("STORAGE_BACKEND", "memory"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		GameSaveBackend: getenvDefault("GAME_SAVE_BACKEND", "primary"),
		RedisURL:        os.Getenv("REDIS_URL"),
	}

	switch cfg.Backend {
	case "memory", "postgres":
	default:
		return StorageConfig{}, fmt.Errorf("STORAGE_BACKEND must be memory or postgres, got %q", cfg.Backend)
	}
	if cfg.Backend == "postgres" && cfg.DatabaseURL == "" {
		return StorageConfig{}, fmt.Errorf("missing required env var: DATABASE_URL")
	}

	switch cfg.GameSaveBackend {
	case "primary", "redis":
	default:
		return StorageConfig{}, fmt.Errorf("GAME_SAVE_BACKEND must be primary or redis, got %q", cfg.GameSaveBackend)
	}
	if cfg.GameSaveBackend == "redis" && cfg.RedisURL == "" {
		return StorageConfig{}, fmt.Errorf("missing required env var: REDIS_URL")
	}

	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
