package config

import (
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/snelllabs/creativeboard/internal/models"
)

type Config struct {
	Port            string
	HTTPTimeout     time.Duration
	RefreshInterval time.Duration
	LogLevel        slog.Level
	Projects        []models.ProjectConfig
}

// FromEnv reads configuration from the environment, loading .env files
// first when present. Projects come from PROJECTS (comma-separated keys)
// plus PROJECT_<KEY>_{NAME,EMOJI,URL,GID} per key, and are returned sorted
// by key so downstream merge order is deterministic.
func FromEnv() Config {
	_ = godotenv.Load(".env", ".env.local")

	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	refresh := 5 * time.Minute
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			refresh = d
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}

	return Config{
		Port:            envOr("PORT", "8080"),
		HTTPTimeout:     to,
		RefreshInterval: refresh,
		LogLevel:        lvl,
		Projects:        projectsFromEnv(),
	}
}

func projectsFromEnv() []models.ProjectConfig {
	var out []models.ProjectConfig
	for _, key := range strings.Split(os.Getenv("PROJECTS"), ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		prefix := "PROJECT_" + strings.ToUpper(key) + "_"
		out = append(out, models.ProjectConfig{
			Key:   key,
			Name:  envOr(prefix+"NAME", key),
			Emoji: os.Getenv(prefix + "EMOJI"),
			URL:   os.Getenv(prefix + "URL"),
			GID:   envOr(prefix+"GID", "0"),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
