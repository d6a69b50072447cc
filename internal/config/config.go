package config

import (
	"os"
	"strconv"

	"fanquest/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	// Redis for rate limiting; empty addr disables it (fail-open)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Fixed-window limits
	APIRateLimit   int // requests per window per IP
	APIRateWindow  int // seconds
	AuthRateLimit  int
	AuthRateWindow int
	SpinRateLimit  int // per user, guards the wheel endpoint
	SpinRateWindow int

	LeaderboardSize int
}

// Load reads configuration from the environment, with .env support for
// local development. Missing required vars are fatal.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	cfg := &Config{
		AppPort:         port,
		DatabaseURL:     dbURL,
		JWTSecret:       jwtSecret,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         envInt("REDIS_DB", 0),
		APIRateLimit:    envInt("API_RATE_LIMIT", 60),
		APIRateWindow:   envInt("API_RATE_WINDOW_SECONDS", 60),
		AuthRateLimit:   envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:  envInt("AUTH_RATE_WINDOW_SECONDS", 60),
		SpinRateLimit:   envInt("SPIN_RATE_LIMIT", 5),
		SpinRateWindow:  envInt("SPIN_RATE_WINDOW_SECONDS", 60),
		LeaderboardSize: envInt("LEADERBOARD_SIZE", 100),
	}
	return cfg
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
