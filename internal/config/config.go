package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every process-wide setting. It is loaded once at startup and
// passed by reference into the components that need it, so handlers and
// middleware never read ambient environment state.
type Config struct {
	Port               string
	DatabaseURL        string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	JWTSecret          string
	CORSAllowedOrigins string
	WorkerCount        int
}

var godotenvLoad = godotenv.Load

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present. JWT_SECRET and DATABASE_URL are
// required; everything else has a development default.
func Load() (*Config, error) {
	_ = godotenvLoad()

	cfg := &Config{
		Port:               getEnv("PORT", "4000"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		RedisDB:            0,
		WorkerCount:        4,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid REDIS_DB: %q", v)
		}
		cfg.RedisDB = n
	}

	if v := os.Getenv("WORKER_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid WORKER_COUNT: %q", v)
		}
		cfg.WorkerCount = n
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
