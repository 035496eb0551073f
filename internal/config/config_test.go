package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := NewConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "development")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "/auth/login", cfg.LoginPath)
	assert.Equal(t, []string{"/dashboard"}, cfg.ProtectedPrefixes)
	assert.Equal(t, 24*time.Hour, cfg.ReminderLookahead)
	assert.False(t, cfg.SecureCookies())
}

func TestNewConfig_ProductionUsesSecureCookies(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "production")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.True(t, cfg.SecureCookies())
}

func TestNewConfig_ProtectedPrefixes(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PROTECTED_PREFIXES", " /dashboard, /applications-ui ,,")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"/dashboard", "/applications-ui"}, cfg.ProtectedPrefixes)
}

func TestNewConfig_InvalidLookahead(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REMINDER_LOOKAHEAD", "tomorrow")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestRemindersEnabled(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.RemindersEnabled())
	cfg.SMTPHost = "smtp.example.com"
	assert.True(t, cfg.RemindersEnabled())
}
