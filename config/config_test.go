package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseMap(m map[string]string) (*Config, error) {
	return Parse(env.Options{Environment: m})
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parseMap(map[string]string{
		"MONGODB_URI": "mongodb://localhost:27017",
		"JWT_SECRET":  "dev-secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "autoclub", cfg.DBName)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.True(t, cfg.DemoAccounts)
	assert.False(t, cfg.UseAMQP())
	assert.Equal(t, "https://www.bookmyshow.com/events", cfg.BookingURL)
}

func TestParseMissingMongoURIIsFatal(t *testing.T) {
	_, err := parseMap(map[string]string{"JWT_SECRET": "dev-secret"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
}

func TestParseRejectsShortSecretInProduction(t *testing.T) {
	_, err := parseMap(map[string]string{
		"MONGODB_URI": "mongodb://db:27017",
		"JWT_SECRET":  "short",
		"APP_ENV":     "production",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestParseOverrides(t *testing.T) {
	cfg, err := parseMap(map[string]string{
		"MONGODB_URI":   "mongodb://db:27017",
		"MONGODB_DB":    "club",
		"JWT_SECRET":    "0123456789abcdef0123456789abcdef",
		"APP_ENV":       "production",
		"PORT":          "9000",
		"CORS_ORIGINS":  "https://a.example.com,https://b.example.com",
		"DEMO_ACCOUNTS": "false",
		"AMQP_URL":      "amqp://guest:guest@mq:5672/",
		"SESSION_TTL":   "2h",
	})
	require.NoError(t, err)

	assert.Equal(t, "club", cfg.DBName)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.False(t, cfg.DemoAccounts)
	assert.True(t, cfg.UseAMQP())
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestParseRejectsBadPort(t *testing.T) {
	_, err := parseMap(map[string]string{
		"MONGODB_URI": "mongodb://db:27017",
		"JWT_SECRET":  "dev-secret",
		"PORT":        "70000",
	})
	assert.Error(t, err)
}
