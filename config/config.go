package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const minSecretLen = 32

// Config holds the application configuration loaded from the environment.
type Config struct {
	MongoURI string `env:"MONGODB_URI,required"`
	DBName   string `env:"MONGODB_DB" envDefault:"autoclub"`

	Port     int    `env:"PORT" envDefault:"8080"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret     string        `env:"JWT_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	SessionCookie string        `env:"SESSION_COOKIE" envDefault:"autoclub_session"`

	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	// DemoAccounts enables the admin@example.com / user@example.com logins.
	DemoAccounts bool   `env:"DEMO_ACCOUNTS" envDefault:"true"`
	BookingURL   string `env:"BOOKING_URL" envDefault:"https://www.bookmyshow.com/events"`

	// Optional AMQP broker for page revalidation notices.
	AMQPURL            string `env:"AMQP_URL"`
	RevalidateExchange string `env:"REVALIDATE_EXCHANGE" envDefault:"autoclub.revalidate"`
}

// Load reads an optional .env file and parses the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment variables")
	}
	return Parse(env.Options{})
}

// Parse builds a Config from opts; tests pass an explicit Environment map.
func Parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if !c.IsDevelopment() && len(c.JWTSecret) < minSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes outside development", minSecretLen)
	}
	return nil
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// UseAMQP returns true if a broker is configured for revalidation notices.
func (c *Config) UseAMQP() bool {
	return c.AMQPURL != ""
}
