package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Data source names accepted by DATA_SOURCE.
const (
	DataSourceDemo     = "demo"
	DataSourcePostgres = "postgres"
	DataSourceEmpty    = "empty"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Data         DataConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	// StaticDir is a directory of front-end assets served at "/". Empty
	// serves the API only.
	StaticDir             string
	CORSAllowOrigins      string
}

// DataConfig selects where the ticket store is seeded from.
type DataConfig struct {
	Source          string
	DemoSeed        int64
	DemoTicketCount int
	ThreadSeed      int64
	MigrationsDir   string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// NotificationConfig controls where ingestion events are republished.
type NotificationConfig struct {
	EventsChannel string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	demoSeed, err := strconv.ParseInt(getEnv("DEMO_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEMO_SEED: %w", err)
	}
	threadSeed, err := strconv.ParseInt(getEnv("THREAD_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid THREAD_SEED: %w", err)
	}
	source := strings.ToLower(getEnv("DATA_SOURCE", DataSourceDemo))
	switch source {
	case DataSourceDemo, DataSourcePostgres, DataSourceEmpty:
	default:
		return nil, fmt.Errorf("invalid DATA_SOURCE %q: want demo, postgres or empty", source)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", false)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticket-dashboard"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("PORT", getEnv("APP_PORT", "3000")),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			StaticDir:             getEnv("STATIC_DIR", ""),
			CORSAllowOrigins:      getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Data: DataConfig{
			Source:          source,
			DemoSeed:        demoSeed,
			DemoTicketCount: getEnvAsInt("DEMO_TICKET_COUNT", 50),
			ThreadSeed:      threadSeed,
			MigrationsDir:   getEnv("MIGRATIONS_DIR", "migrations"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Notification: NotificationConfig{
			EventsChannel: getEnv("REDIS_EVENTS_CHANNEL", "dashboard:tickets"),
		},
	}

	if cfg.Data.Source == DataSourcePostgres && cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATA_SOURCE=postgres requires POSTGRES_DSN")
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

// Seeds resolves the demo and thread seeds. Zero values are replaced with a
// value derived from now; an unset thread seed follows the demo seed.
func (d DataConfig) Seeds(now time.Time) (demo, thread int64) {
	demo = d.DemoSeed
	if demo == 0 {
		demo = now.UnixNano()
	}
	thread = d.ThreadSeed
	if thread == 0 {
		thread = demo
	}
	return demo, thread
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
