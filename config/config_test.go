package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("FEED_PAGE_SIZE", "")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")

	cfg := Load()

	assert.Equal(t, ":8084", cfg.HTTPAddr)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 4, cfg.FeedPageSize)
	assert.Equal(t, "uploads", cfg.Bucket)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("FEED_PAGE_SIZE", "10")
	t.Setenv("FEED_PAGE_SIZE_BOGUS", "x")

	cfg := Load()

	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.FeedPageSize)
}

func TestConfig_PostgresDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "bite"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=bite sslmode=disable", cfg.PostgresDSN())
}
