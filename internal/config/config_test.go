package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "unit-test-signing-secret-0123456789abcdef")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL_HOURS", "")
	t.Setenv("MFA_OTP_TTL_SECONDS", "")
	t.Setenv("MFA_OTP_MAX_ATTEMPTS", "")
	t.Setenv("METRICS_ADDR", "")
	t.Setenv("REDIS_DB", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "auth-service", cfg.App.Name)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 168, cfg.Auth.RefreshTokenTTLHours)
	assert.Equal(t, 300, cfg.MFA.OTPTTLSeconds)
	assert.Equal(t, 3, cfg.MFA.OTPMaxAttempts)
	assert.Empty(t, cfg.Metrics.Addr)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL())
	assert.Equal(t, 5*time.Minute, cfg.MFA.OTPTTL())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "unit-test-signing-secret-0123456789abcdef")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL_HOURS", "24")
	t.Setenv("MFA_OTP_TTL_SECONDS", "120")
	t.Setenv("MFA_OTP_MAX_ATTEMPTS", "5")
	t.Setenv("METRICS_ADDR", ":9102")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 24*time.Hour, cfg.Auth.RefreshTokenTTL())
	assert.Equal(t, 2*time.Minute, cfg.MFA.OTPTTL())
	assert.Equal(t, 5, cfg.MFA.OTPMaxAttempts)
	assert.Equal(t, ":9102", cfg.Metrics.Addr)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
}

func TestLoad_MalformedIntFallsBack(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "unit-test-signing-secret-0123456789abcdef")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "sixty")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
}
