// Package config loads server settings from .env, the environment and
// command-line flags. Flags take precedence over the environment, which takes
// precedence over .env.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/xtding233/roulette/internal/roulette"
)

type Config struct {
	HTTPAddr             string
	GRPCAddr             string // empty disables the gRPC listener
	LogLevel             slog.Level
	PresetDir            string
	PublicURL            string
	RateLimit            float64 // requests per second; <= 0 disables limiting
	RateBurst            int
	RestoreCacheSize     int
	RestoreCacheTTL      time.Duration
	PresetReloadInterval time.Duration // 0 disables the watcher
	MaxTrials            int
}

// Load reads .env (if present), then the environment, then args.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	c := Config{
		HTTPAddr:  envOr("HTTP_ADDR", ":8080"),
		GRPCAddr:  envOr("GRPC_ADDR", ":9090"),
		PresetDir: envOr("PRESET_DIR", "./config"),
		PublicURL: envOr("PUBLIC_URL", "http://localhost:8080/"),
	}
	var err error
	if c.RateLimit, err = envFloat("RATE_LIMIT", 10); err != nil {
		return Config{}, err
	}
	if c.RateBurst, err = envInt("RATE_BURST", 20); err != nil {
		return Config{}, err
	}
	if c.RestoreCacheSize, err = envInt("RESTORE_CACHE_SIZE", 1024); err != nil {
		return Config{}, err
	}
	if c.RestoreCacheTTL, err = envDuration("RESTORE_CACHE_TTL", 10*time.Minute); err != nil {
		return Config{}, err
	}
	if c.PresetReloadInterval, err = envDuration("PRESET_RELOAD_INTERVAL", 2*time.Second); err != nil {
		return Config{}, err
	}
	if c.MaxTrials, err = envInt("MAX_TRIALS", 100_000); err != nil {
		return Config{}, err
	}
	logLevel := envOr("LOG_LEVEL", "info")

	fs := pflag.NewFlagSet("roulette-server", pflag.ContinueOnError)
	fs.StringVar(&c.HTTPAddr, "http-addr", c.HTTPAddr, "HTTP listen address")
	fs.StringVar(&c.GRPCAddr, "grpc-addr", c.GRPCAddr, "gRPC listen address (empty disables)")
	fs.StringVar(&logLevel, "log-level", logLevel, "debug, info, warn or error")
	fs.StringVar(&c.PresetDir, "preset-dir", c.PresetDir, "directory containing presets/")
	fs.StringVar(&c.PublicURL, "public-url", c.PublicURL, "page URL used to build share links")
	fs.Float64Var(&c.RateLimit, "rate-limit", c.RateLimit, "requests per second (<= 0 disables)")
	fs.IntVar(&c.RateBurst, "rate-burst", c.RateBurst, "rate limiter burst")
	fs.IntVar(&c.RestoreCacheSize, "restore-cache-size", c.RestoreCacheSize, "restore cache entries")
	fs.DurationVar(&c.RestoreCacheTTL, "restore-cache-ttl", c.RestoreCacheTTL, "restore cache entry lifetime")
	fs.DurationVar(&c.PresetReloadInterval, "preset-reload-interval", c.PresetReloadInterval, "preset poll interval (0 disables)")
	fs.IntVar(&c.MaxTrials, "max-trials", c.MaxTrials, "upper bound for simulate trials")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if c.LogLevel, err = parseLogLevel(logLevel); err != nil {
		return Config{}, err
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch {
	case c.HTTPAddr == "":
		return errors.New("HTTP_ADDR must not be empty")
	case c.RestoreCacheSize < 1:
		return errors.New("RESTORE_CACHE_SIZE must be >= 1")
	case c.RestoreCacheTTL < 0:
		return errors.New("RESTORE_CACHE_TTL must not be negative")
	case c.PresetReloadInterval < 0:
		return errors.New("PRESET_RELOAD_INTERVAL must not be negative")
	case c.MaxTrials < 1 || c.MaxTrials > roulette.MaxTrials:
		return fmt.Errorf("MAX_TRIALS must be between 1 and %d", roulette.MaxTrials)
	case c.RateLimit > 0 && c.RateBurst < 1:
		return errors.New("RATE_BURST must be >= 1 when rate limiting is enabled")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
