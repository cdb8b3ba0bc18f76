package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("DRAFT_TTL_DAYS", "")

	c := LoadConfig()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, 10, c.DBMaxOpenConns)
	assert.Equal(t, []string{"http://localhost:5173"}, c.CORSOrigins)
	assert.Equal(t, 30*24*time.Hour, c.DraftTTL)
	assert.Same(t, c, Current())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DRAFT_TTL_DAYS", "7")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "surveys")

	c := LoadConfig()
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, 10, c.DBMaxOpenConns)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins)
	assert.Equal(t, 7*24*time.Hour, c.DraftTTL)
	assert.Contains(t, c.DSN(), "host=db")
	assert.Contains(t, c.DSN(), "dbname=surveys")
}

func TestCurrent_WithoutLoad(t *testing.T) {
	prev := AppConfig
	AppConfig = nil
	t.Cleanup(func() { AppConfig = prev })

	c := Current()
	assert.Equal(t, 10, c.SubmitRatePerMin)
	assert.Equal(t, "@daily", c.DraftPurgeCron)
}
