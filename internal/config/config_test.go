package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":3001", cfg.HTTPAddr)
	assert.Equal(t, []string{"admin@elizabethtrader.com"}, cfg.AdminUsers)
	assert.Equal(t, "Elizabeth", cfg.DefaultAuthor)
	assert.Equal(t, 12*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, "elizatrader-service", cfg.JWT.Issuer)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("ADMIN_USERS", "one@example.com,two@example.com")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("ALLOWED_ORIGINS", "https://example.com")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, []string{"one@example.com", "two@example.com"}, cfg.AdminUsers)
	assert.Equal(t, 30*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 12*time.Hour, cfg.JWT.TTL)
}
