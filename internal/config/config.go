package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime settings. Values come from the environment, with
// an optional .env file loaded first.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	ModelPath    string
	ModelURL     string
	ModelTimeout time.Duration
	ModelRPS     int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	DatabaseURL string
	DBPath      string
}

var defaults = map[string]any{
	"PORT":           "8080",
	"LOG_LEVEL":      "info",
	"LOG_FORMAT":     "json",
	"MODEL_PATH":     "data/model_forest.json",
	"MODEL_URL":      "",
	"MODEL_TIMEOUT":  "5s",
	"MODEL_RPS":      20,
	"REDIS_ADDR":     "",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       0,
	"CACHE_TTL":      "10m",
	"DATABASE_URL":   "",
	"DB_PATH":        "",
}

// LoadDotEnv loads .env into the process environment. A missing file is not
// an error; it reports whether one was found.
func LoadDotEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	cfg := &Config{
		Port:          strings.TrimSpace(v.GetString("PORT")),
		LogLevel:      strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:     strings.ToLower(v.GetString("LOG_FORMAT")),
		ModelPath:     strings.TrimSpace(v.GetString("MODEL_PATH")),
		ModelURL:      strings.TrimSpace(v.GetString("MODEL_URL")),
		ModelTimeout:  v.GetDuration("MODEL_TIMEOUT"),
		ModelRPS:      v.GetInt("MODEL_RPS"),
		RedisAddr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		CacheTTL:      v.GetDuration("CACHE_TTL"),
		DatabaseURL:   strings.TrimSpace(v.GetString("DATABASE_URL")),
		DBPath:        strings.TrimSpace(v.GetString("DB_PATH")),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.ModelURL == "" && c.ModelPath == "" {
		return errors.New("one of MODEL_URL or MODEL_PATH is required")
	}
	if c.ModelTimeout <= 0 {
		return errors.New("MODEL_TIMEOUT must be positive")
	}
	if c.ModelRPS <= 0 {
		return errors.New("MODEL_RPS must be positive")
	}
	if c.CacheTTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}
	return nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	v := viper.New()
	v.SetDefault(key, fallback)
	v.AutomaticEnv()
	if s := v.GetString(key); s != "" {
		return s
	}
	return fallback
}
