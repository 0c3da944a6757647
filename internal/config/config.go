package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"carsales-service/internal/db"
	"carsales-service/internal/pkg/jwt"
)

type AppConfig struct {
	// Server
	Env             string
	HTTPAddr        string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// Storage
	DB            db.Config
	RedisAddrs    []string // empty disables the redis cache
	RedisPass     string
	RedisDB       int
	UploadDir     string
	UploadBaseURL string

	// Messaging; an empty URL disables the amqp publisher
	AMQPURL      string
	AMQPExchange string

	// Auth
	JWT                  jwt.Config
	LoginRate            string
	TokenCleanupInterval time.Duration
	DefaultAdminEmail    string
	DefaultAdminPassword string
}

func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		Env:             getEnv("APP_ENV", "production"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8000"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSOrigins:     getEnvSlice("CORS_ORIGINS", []string{"*"}),

		DB: db.Config{
			Type:         getEnv("DB_TYPE", "postgres"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", ""),
			User:         getEnv("DB_USER", "carsales"),
			Password:     getEnv("DB_PASSWORD", ""),
			Name:         getEnv("DB_NAME", "carsales"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			PGDriver:     getEnv("DB_PG_DRIVER", "pgx"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		},
		RedisAddrs:    getEnvSlice("REDIS_ADDR", nil),
		RedisPass:     getEnv("REDIS_PASS", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		UploadBaseURL: getEnv("UPLOAD_BASE_URL", "/static/uploads"),

		AMQPURL:      getEnv("RABBITMQ_URL", ""),
		AMQPExchange: getEnv("RABBITMQ_EXCHANGE", "carsales.events"),

		JWT: jwt.Config{
			PrivPath: getEnv("JWT_PRIVATE_KEY_PATH", ""),
			PubPath:  getEnv("JWT_PUBLIC_KEY_PATH", ""),
			Secret:   getEnv("JWT_SECRET", ""),
			Issuer:   getEnv("JWT_ISSUER", "carsales-service"),
			Audience: getEnv("JWT_AUDIENCE", "carsales-backoffice"),
			TTL:      getEnvDuration("JWT_TTL", 30*time.Minute),
			KID:      getEnv("JWT_KID", "carsales-key"),
		},
		LoginRate:            getEnv("LOGIN_RATE", "5-M"),
		TokenCleanupInterval: getEnvDuration("TOKEN_CLEANUP_INTERVAL", time.Hour),
		DefaultAdminEmail:    getEnv("DEFAULT_ADMIN_EMAIL", ""),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),
	}
}

// --- Helper functions ---

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

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90")
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
