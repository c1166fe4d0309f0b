package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values loaded from environment variables.
// Mongo, Redis and Kafka are optional; empty values select the in-memory adapters.
type Config struct {
	Env                string
	HTTPAddr           string
	MetricsPath        string
	Timezone           *time.Location
	WindowDays         int
	WindowStart        time.Time
	SessionTTL         time.Duration
	AvailabilityMode   string
	ListingsFixtures   string
	MongoURI           string
	MongoDB            string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	KafkaBrokers       []string
	KafkaTopicPrefix   string
	OutboxPollInterval time.Duration
	RetryBackoff       []time.Duration
	RateLimitRPS       float64
	RateLimitBurst     int
	CORSOrigins        []string
}

// LoadDotEnv reads the given .env files into the environment. Missing files are skipped
// and variables already set win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		MetricsPath:      getEnv("METRICS_PATH", "/metrics"),
		AvailabilityMode: strings.ToLower(getEnv("AVAILABILITY_MODE", "random")),
		ListingsFixtures: getEnv("LISTINGS_FIXTURES", "data/listings.yaml"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "staybook"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "*")),
	}
	cfg.KafkaBrokers = splitList(os.Getenv("KAFKA_BROKERS"))

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Asia/Tokyo"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Timezone = loc

	if cfg.WindowDays, err = parseIntEnv("WINDOW_DAYS", 7); err != nil {
		return Config{}, err
	}
	if cfg.WindowDays < 1 {
		return Config{}, fmt.Errorf("WINDOW_DAYS must be positive, got %d", cfg.WindowDays)
	}
	if raw := os.Getenv("WINDOW_START"); raw != "" {
		start, err := time.ParseInLocation(time.DateOnly, raw, loc)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WINDOW_START: %w", err)
		}
		cfg.WindowStart = start
	}
	if cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = parseIntEnv("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.OutboxPollInterval, err = parseDurationEnv("OUTBOX_POLL_INTERVAL", 500*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = parseIntEnv("RATE_LIMIT_BURST", 20); err != nil {
		return Config{}, err
	}
	rps := getEnv("RATE_LIMIT_RPS", "10")
	if cfg.RateLimitRPS, err = strconv.ParseFloat(rps, 64); err != nil {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", rps, err)
	}

	retryStr := getEnv("RETRY_BACKOFF", "1s,5s,30s")
	for _, raw := range strings.Split(retryStr, ",") {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RETRY_BACKOFF component %q: %w", raw, err)
		}
		cfg.RetryBackoff = append(cfg.RetryBackoff, d)
	}

	switch cfg.AvailabilityMode {
	case "random", "calendar":
	default:
		return Config{}, fmt.Errorf("invalid AVAILABILITY_MODE %q", cfg.AvailabilityMode)
	}
	return cfg, nil
}

// OutboxEnabled reports whether events are persisted and relayed to Kafka.
func (c Config) OutboxEnabled() bool {
	return c.MongoURI != "" && len(c.KafkaBrokers) > 0
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return n, nil
}
