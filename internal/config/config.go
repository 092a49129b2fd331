// Package config loads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the service reads at startup.
type Config struct {
	HTTPAddr    string
	RedisAddr   string // empty keeps session state in memory
	SessionTTL  time.Duration
	KafkaBroker string // empty disables event publishing
	TopicShared string
	TopicAlerts string
	CORSOrigins []string
	LogLevel    string
	LogFormat   string
}

// Load reads the optional env files, then the environment. Missing env
// files are not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	ttl, err := time.ParseDuration(getenv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("parse SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}

	cfg := &Config{
		HTTPAddr:    getenv("SHARE_HTTP_ADDR", ":8080"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		SessionTTL:  ttl,
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		TopicShared: getenv("KAFKA_TOPIC_SHARED", "listing.shared"),
		TopicAlerts: getenv("KAFKA_TOPIC_ALERTS", "community.alert"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "*")),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogFormat:   getenv("LOG_FORMAT", "json"),
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
