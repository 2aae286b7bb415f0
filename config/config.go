package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/farellandr/sponzo/internal/store"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	Port string

	StoreDriver string
	StorePath   string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisURL      string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	JWTSecret           string
	TokenTTL            time.Duration
	VerifyPasswords     bool
	TicketSigningSecret string

	LogLevel  string
	LogFormat string

	FormOrganizerURL string
	FormSponsorURL   string
	FormTimeout      time.Duration

	UploadPath    string
	EnableMetrics bool
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverFile)),
		StorePath:   getEnv("STORE_PATH", "data/sponzo.json"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		RedisPrefix:   getEnv("REDIS_PREFIX", "sponzo:"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTL:        getEnvAsDuration("TOKEN_TTL", "24h"),
		VerifyPasswords: getEnvAsBool("AUTH_VERIFY_PASSWORDS", false),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: os.Getenv("LOG_FORMAT"),

		FormOrganizerURL: os.Getenv("FORM_ORGANIZER_URL"),
		FormSponsorURL:   os.Getenv("FORM_SPONSOR_URL"),
		FormTimeout:      getEnvAsDuration("FORM_TIMEOUT", "10s"),

		UploadPath:    getEnv("UPLOAD_PATH", "./uploads/"),
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}
	cfg.TicketSigningSecret = getEnv("TICKET_SIGNING_SECRET", cfg.JWTSecret)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverFile, DriverRedis:
	case DriverPostgres:
		if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
			return fmt.Errorf("config: DB_HOST, DB_USER and DB_NAME are required for the postgres store")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.StoreDriver == DriverFile && strings.TrimSpace(c.StorePath) == "" {
		return fmt.Errorf("config: STORE_PATH is required for the file store")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive")
	}
	return nil
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

func InitRedis(cfg *Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		opts = &redis.Options{Addr: cfg.RedisURL}
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	opts.DB = cfg.RedisDB
	opts.MaxRetries = 3

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// InitStore opens the persistent store selected by STORE_DRIVER. The returned
// close function releases any connection it holds.
func InitStore(cfg *Config) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case DriverMemory:
		return store.NewMemoryStore(), noop, nil
	case DriverFile:
		s, err := store.NewFileStore(cfg.StorePath)
		return s, noop, err
	case DriverPostgres:
		db, err := InitDatabase(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s, err := store.NewGormStore(db)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		return s, closeDB, nil
	case DriverRedis:
		client, err := InitRedis(cfg)
		if err != nil {
			return nil, nil, err
		}
		return store.NewRedisStore(client, cfg.RedisPrefix), client.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, defaultValue)); err == nil {
		return d
	}
	d, _ := time.ParseDuration(defaultValue)
	return d
}
