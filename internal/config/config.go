package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/neonflux-io/discord-admin-bot/internal/redis"
)

// Config holds everything the bot needs at startup. Values come from
// config.json (or config.yaml), with environment variables taking
// priority so deployments can override without touching the file.
type Config struct {
	Token         string       `json:"token" yaml:"token"`
	DefaultPrefix string       `json:"default_prefix" yaml:"default_prefix"`
	LogLevel      string       `json:"log_level" yaml:"log_level"`
	MetricsAddr   string       `json:"metrics_addr" yaml:"metrics_addr"`
	Redis         redis.Config `json:"redis" yaml:"redis"`
}

// Load reads config.json or config.yaml from the working directory.
// A .env file, if present, is loaded first so env overrides work in
// local development too.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DefaultPrefix: ",",
		LogLevel:      "info",
	}

	if raw, err := os.ReadFile("config.json"); err == nil {
		if err := json.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config.json: %w", err)
		}
	} else if raw, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config.yaml: %w", err)
		}
	}

	cfg.Token = envString("DISCORD_TOKEN", envString("BOT_TOKEN", cfg.Token))
	cfg.DefaultPrefix = envString("BOT_PREFIX", cfg.DefaultPrefix)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.MetricsAddr = envString("METRICS_ADDR", cfg.MetricsAddr)
	cfg.Redis.Addr = envString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envString("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = envInt("REDIS_DB", cfg.Redis.DB)

	if cfg.Token == "" {
		return nil, fmt.Errorf("no bot token configured (set DISCORD_TOKEN or token in config.json)")
	}
	if cfg.DefaultPrefix == "" {
		cfg.DefaultPrefix = ","
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}
