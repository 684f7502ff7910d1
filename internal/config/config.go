package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type ServerConfig struct {
	Port string
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

type SecurityConfig struct {
	JWTSecret    string
	JWTPublicKey string
}

// UpstreamConfig points at the backend REST API and its event stream.
type UpstreamConfig struct {
	BaseURL    string
	StreamPath string
	Timeout    time.Duration
	// TokenEnv names the environment variable holding the stream credential.
	TokenEnv string
}

type SyncConfig struct {
	BackoffBase time.Duration
	BackoffMax  time.Duration
	ProfileTTL  time.Duration
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
	Topics  []string
}

type WebsocketConfig struct {
	SendBuffer int
}

type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Security  SecurityConfig
	Upstream  UpstreamConfig
	Sync      SyncConfig
	Kafka     KafkaConfig
	Websocket WebsocketConfig
}

// Load reads configuration from the environment, applying defaults where the
// variable is unset. UPSTREAM_BASE_URL is the only required value.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Logging: LoggingConfig{
			Directory: getEnv("LOG_DIR", "./logs"),
			Level:     getEnv("LOG_LEVEL", "info"),
			Format:    getEnv("LOG_FORMAT", "text"),
		},
		Security: SecurityConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTPublicKey: os.Getenv("JWT_PUBLIC_KEY"),
		},
		Upstream: UpstreamConfig{
			BaseURL:    strings.TrimRight(os.Getenv("UPSTREAM_BASE_URL"), "/"),
			StreamPath: getEnv("UPSTREAM_STREAM_PATH", "/api/v1/reservations/stream"),
			Timeout:    getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
			TokenEnv:   getEnv("UPSTREAM_TOKEN_ENV", "UPSTREAM_TOKEN"),
		},
		Sync: SyncConfig{
			BackoffBase: getDuration("SYNC_BACKOFF_BASE", time.Second),
			BackoffMax:  getDuration("SYNC_BACKOFF_MAX", 30*time.Second),
			ProfileTTL:  getDuration("SYNC_PROFILE_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", os.Getenv("KAFKA_BROKER"))),
			GroupID: getEnv("KAFKA_GROUP_ID", "mesa-ya-sync"),
			Topics:  splitList(os.Getenv("KAFKA_TOPICS")),
		},
		Websocket: WebsocketConfig{
			SendBuffer: getInt("WS_SEND_BUFFER", 16),
		},
	}

	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if cfg.Sync.BackoffBase <= 0 || cfg.Sync.BackoffMax < cfg.Sync.BackoffBase {
		return nil, fmt.Errorf("invalid sync backoff configuration: base=%s max=%s", cfg.Sync.BackoffBase, cfg.Sync.BackoffMax)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
