package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StoreDynamo = "dynamo"
	StoreMemory = "memory"
)

// Config holds all runtime configuration loaded from environment variables.
// It is built once at startup and never mutated afterwards.
type Config struct {
	AppPort        string
	AppEnv         string
	AppName        string
	LogLevel       string
	StoreBackend   string
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	SMTPHost       string
	SMTPPort       string
	SMTPFrom       string
	SMTPUsername   string
	SMTPPassword   string
	NATSURL        string
	NATSSubject    string
	NATSQueue      string
	AllowedOrigins []string // CORS allowed origins
	RateLimitRPS   int
	RateLimitBurst int
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	DeliveryRecords  string
	AppNotifications string
}

// Load reads all configuration from environment variables and validates it.
func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")
	cfg := &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         env,
		AppName:        getEnv("APP_NAME", "ScholarAI"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		StoreBackend:   getEnv("STORE_BACKEND", StoreDynamo),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			DeliveryRecords:  getEnv("DYNAMO_TABLE_DELIVERY_RECORDS", "notification_records"),
			AppNotifications: getEnv("DYNAMO_TABLE_APP_NOTIFICATIONS", "app_notifications"),
		},
		SMTPHost:       getEnv("SMTP_HOST", devDefault(env, "localhost")),
		SMTPPort:       getEnv("SMTP_PORT", "1025"),
		SMTPFrom:       getEnv("SMTP_FROM", devDefault(env, "noreply@example.com")),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		NATSURL:        getEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject:    getEnv("NATS_SUBJECT", "notifications.requests"),
		NATSQueue:      getEnv("NATS_QUEUE", "notification-service"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on configuration the service cannot run with.
// Mail credentials are mandatory everywhere except development, where a local
// catch-all SMTP server without auth is the norm.
func (c *Config) Validate() error {
	var errs []error
	if c.SMTPHost == "" {
		errs = append(errs, errors.New("SMTP_HOST is required"))
	}
	if c.SMTPFrom == "" {
		errs = append(errs, errors.New("SMTP_FROM is required"))
	}
	if c.AppEnv != "development" && (c.SMTPUsername == "" || c.SMTPPassword == "") {
		errs = append(errs, errors.New("SMTP_USERNAME and SMTP_PASSWORD are required outside development"))
	}
	if c.StoreBackend != StoreDynamo && c.StoreBackend != StoreMemory {
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreDynamo, StoreMemory, c.StoreBackend))
	}
	if c.NATSSubject == "" {
		errs = append(errs, errors.New("NATS_SUBJECT is required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// devDefault returns v in development and "" elsewhere, so Validate reports
// settings that production must set explicitly.
func devDefault(env, v string) string {
	if env == "development" {
		return v
	}
	return ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
