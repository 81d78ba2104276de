package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Booking BookingConfig
	Events  EventsConfig
	Batch   BatchConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" required:"true"`
	Password      string `envconfig:"DB_PASSWORD" required:"true"`
	DBName        string `envconfig:"DB_NAME" required:"true"`
	SSLMode       string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone      string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns      int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	MigrateOnBoot bool   `envconfig:"DB_MIGRATE_ON_BOOT" default:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After,Idempotent-Replayed,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// BookingConfig tunes the admission path.
type BookingConfig struct {
	SerializableRetries int           `envconfig:"BOOKING_SERIALIZABLE_RETRIES" default:"3"`
	IdempotencyTTL      time.Duration `envconfig:"BOOKING_IDEMPOTENCY_TTL" default:"24h"`
	RetryAfter          time.Duration `envconfig:"BOOKING_RETRY_AFTER" default:"1s"`
}

type EventsConfig struct {
	Brokers      []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic        string        `envconfig:"KAFKA_RESERVATION_TOPIC" default:"warehouse.reservations"`
	Compression  string        `envconfig:"KAFKA_COMPRESSION" default:"snappy"`
	RequiredAcks string        `envconfig:"KAFKA_REQUIRED_ACKS" default:"all"`
	BatchTimeout time.Duration `envconfig:"KAFKA_BATCH_TIMEOUT" default:"50ms"`
	MaxAttempts  int           `envconfig:"KAFKA_MAX_ATTEMPTS" default:"5"`
	PollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"2s"`
	BatchSize    int32         `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	MaxRetries   int32         `envconfig:"OUTBOX_MAX_RETRIES" default:"10"`
}

type BatchConfig struct {
	CompletionLimit int32         `envconfig:"BATCH_COMPLETION_LIMIT" default:"500"`
	Timeout         time.Duration `envconfig:"BATCH_TIMEOUT" default:"5m"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// LoadConfig reads an optional .env file, then the process environment.
// Variables already set in the environment take precedence.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 20,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-e2e-tests-only",
			Duration: "1h",
		},
		Booking: BookingConfig{
			SerializableRetries: 3,
			IdempotencyTTL:      24 * time.Hour,
			RetryAfter:          time.Second,
		},
		Events: EventsConfig{
			Topic:        "warehouse.reservations.test",
			Compression:  "none",
			RequiredAcks: "one",
			BatchSize:    10,
			MaxRetries:   3,
		},
		Batch: BatchConfig{
			CompletionLimit: 100,
			Timeout:         time.Minute,
		},
	}
}
