package config

import (
	"errors" // Validation errors
	"fmt"    // DSN formatting
	"time"   // Durations

	"github.com/caarlos0/env/v11" // Struct-tag environment parsing
	"github.com/joho/godotenv"    // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort          string        `env:"APP_PORT" envDefault:"8080"`                  // Application port
	DBUser           string        `env:"DB_USER" envDefault:"car_rental"`             // Database user
	DBPassword       string        `env:"DB_PASSWORD"`                                 // Database password
	DBHost           string        `env:"DB_HOST" envDefault:"127.0.0.1"`              // Database host
	DBPort           string        `env:"DB_PORT" envDefault:"3306"`                   // Database port
	DBName           string        `env:"DB_NAME" envDefault:"car_rental"`             // Database name
	JWTSecret        string        `env:"JWT_SECRET"`                                  // JWT secret key
	JWTTTL           time.Duration `env:"JWT_TTL" envDefault:"24h"`                    // Session lifetime
	CookieName       string        `env:"COOKIE_NAME" envDefault:"car_rental_session"` // Session cookie name
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`      // Redis server address
	RedisPass        string        `env:"REDIS_PASS"`                                  // Redis password
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`                     // Redis database number
	LoginMaxAttempts int64         `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`           // Failed logins allowed per window
	LoginLockWindow  time.Duration `env:"LOGIN_LOCK_WINDOW" envDefault:"15m"`          // Failed login window
	BcryptCost       int           `env:"BCRYPT_COST" envDefault:"10"`                 // bcrypt work factor
	IsProd           bool          `env:"IS_PROD" envDefault:"false"`                  // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// DSN builds the MySQL Data Source Name
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// ValidateServer checks the settings only the HTTP server needs
func (c *Config) ValidateServer() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.LoginMaxAttempts < 1 {
		return errors.New("LOGIN_MAX_ATTEMPTS must be positive")
	}
	return nil
}
