package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	for _, v := range []string{"PORT", "APP_NAME", "FOLDER", "LOG_LEVEL", "ENV", "API_BASE_URL", "API_TIMEOUT", "PAGE_SIZE",
		"TOKEN_STORE", "TOKEN_STORE_PATH", "TOKEN_STORE_PASSPHRASE", "TOKEN_STORE_REDIS_ADDR", "TOKEN_STORE_REDIS_DB", "TOKEN_ROTATION"} {
		t.Setenv(v, "")
	}

	c := New()
	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "Wave Console", c.GetAppName())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "info", c.GetLogLevel())
	require.Equal(t, "http://localhost:8000", c.GetAPIBaseURL())
	require.Equal(t, 15*time.Second, c.GetAPITimeout())
	require.Equal(t, 20, c.GetDefaultPageSize())
	require.Equal(t, 100, c.GetPickerPageSize())
	require.Equal(t, TokenStoreFile, c.GetTokenStore())
	require.Equal(t, filepath.Join("./data", "tokens.json"), c.GetTokenStorePath())
	require.Equal(t, "localhost:6379", c.GetRedisAddr())
	require.Zero(t, c.GetRedisDB())
	require.False(t, c.GetTokenRotation())
}

func TestOverrides(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("API_BASE_URL", "https://api.example.com/")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("FOLDER", "/var/lib/wave")
	t.Setenv("TOKEN_STORE_PATH", "")
	t.Setenv("TOKEN_STORE_REDIS_DB", "2")
	t.Setenv("TOKEN_ROTATION", "true")

	c := New()
	require.Equal(t, ":9090", c.GetPort())
	require.Equal(t, "https://api.example.com", c.GetAPIBaseURL())
	require.Equal(t, 3*time.Second, c.GetAPITimeout())
	require.Equal(t, "/var/lib/wave/tokens.json", c.GetTokenStorePath())
	require.Equal(t, 2, c.GetRedisDB())
	require.True(t, c.GetTokenRotation())
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")
	t.Setenv("PAGE_SIZE", "many")
	t.Setenv("TOKEN_ROTATION", "sometimes")

	c := New()
	require.Equal(t, 15*time.Second, c.GetAPITimeout())
	require.Equal(t, 20, c.GetDefaultPageSize())
	require.False(t, c.GetTokenRotation())
}
