package config

import (
	"errors"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort    string
	AppEnv     string
	CORSOrigin string

	JWTSecret []byte
	JWTExp    time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	MigrationsURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CacheTTL time.Duration
}

// Load reads configuration from the environment, with .env as a convenience
// for local development. It fails when the JWT secret is absent so the
// server can never start signing tokens with an empty key.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIPort:       getEnv("APP_PORT", "8080"),
		AppEnv:        getEnv("APP_ENV", "development"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:5173"),
		JWTSecret:     []byte(os.Getenv("JWT_SECRET")),
		JWTExp:        time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 240)) * time.Hour,
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "user"),
		DBPassword:    getEnv("DB_PASSWORD", "password"),
		DBName:        getEnv("DB_NAME", "hotel_hub_db"),
		DBSslMode:     getEnv("DB_SSLMODE", "disable"),
		MigrationsURL: getEnv("MIGRATIONS_URL", "file://migrations"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		CacheTTL:      time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 60)) * time.Second,
	}

	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("JWT_SECRET must be set")
	}

	cfg.DBConnStr = "postgres://" + url.QueryEscape(cfg.DBUser) + ":" + url.QueryEscape(cfg.DBPassword) +
		"@" + cfg.DBHost + ":" + cfg.DBPort + "/" + cfg.DBName +
		"?sslmode=" + cfg.DBSslMode

	return cfg, nil
}

// IsProduction gates the Secure flag on the auth cookie.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
