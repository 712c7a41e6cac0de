package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Notification NotificationConfig
	Queue        QueueConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	EventChannel string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// QueueConfig selects triage and booking policy. A nil SlotLabels keeps
// the store's default business-day slots.
type QueueConfig struct {
	MaxBookingsPerSlot           int
	UrgentFlagForcesCriticalPath bool
	UrgentKeywordEnabled         bool
	RequireBookingBeforeQueueing bool
	SlotLabels                   []string
}

const defaultMaxBookingsPerSlot = 3

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxPerSlot := getEnvAsInt("QUEUE_MAX_BOOKINGS_PER_SLOT", defaultMaxBookingsPerSlot)
	if maxPerSlot < 1 {
		maxPerSlot = defaultMaxBookingsPerSlot
	}

	var slots []string
	if raw, ok := os.LookupEnv("QUEUE_SLOTS"); ok {
		slots = splitList(raw)
		if len(slots) == 0 {
			return nil, errors.New("QUEUE_SLOTS must list at least one slot")
		}
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "bank-support-queue"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "4000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:         os.Getenv("REDIS_ADDR"),
			Password:     os.Getenv("REDIS_PASSWORD"),
			DB:           redisDB,
			EventChannel: getEnv("REDIS_EVENT_CHANNEL", "support-queue:events"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
		Queue: QueueConfig{
			MaxBookingsPerSlot:           maxPerSlot,
			UrgentFlagForcesCriticalPath: getEnvAsBool("QUEUE_URGENT_FLAG_FORCES_CRITICAL", false),
			UrgentKeywordEnabled:         getEnvAsBool("QUEUE_URGENT_KEYWORD", false),
			RequireBookingBeforeQueueing: getEnvAsBool("QUEUE_REQUIRE_BOOKING", true),
			SlotLabels:                   slots,
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
