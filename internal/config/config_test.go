package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-auth-gateway/internal/config"
)

func TestGetPort(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv("BACKEND_PORT", "")
		require.Equal(t, ":5000", config.EnvVars{}.GetPort())
	})

	t.Run("bare port number gets a colon", func(t *testing.T) {
		t.Setenv("BACKEND_PORT", "8080")
		require.Equal(t, ":8080", config.EnvVars{}.GetPort())
	})

	t.Run("already prefixed", func(t *testing.T) {
		t.Setenv("BACKEND_PORT", ":9090")
		require.Equal(t, ":9090", config.EnvVars{}.GetPort())
	})
}

func TestGetDebugMode(t *testing.T) {
	for value, want := range map[string]bool{
		"1":     true,
		"true":  true,
		"TRUE":  true,
		"yes":   true,
		"on":    true,
		"0":     false,
		"false": false,
		"":      false,
		"maybe": false,
	} {
		t.Run("value "+value, func(t *testing.T) {
			t.Setenv("DEBUG_MODE", value)
			require.Equal(t, want, config.EnvVars{}.GetDebugMode())
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	t.Run("defaults to wildcard", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", "")
		origins := config.Cors{}.GetAllowedOrigins()
		require.True(t, origins.IsAllowedOrigin("*"))
	})

	t.Run("comma separated list", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
		origins := config.Cors{}.GetAllowedOrigins()
		require.True(t, origins.IsAllowedOrigin("https://app.example.com"))
		require.True(t, origins.IsAllowedOrigin("https://admin.example.com"))
		require.False(t, origins.IsAllowedOrigin("*"))
		require.False(t, origins.IsAllowedOrigin("https://evil.example.com"))
	})
}

func TestProviderDefaults(t *testing.T) {
	p := config.Providers{}
	require.Equal(t, "https://oauth2.googleapis.com/token", p.GetGoogleTokenURL())
	require.Equal(t, "https://www.googleapis.com/oauth2/v3/userinfo", p.GetGoogleUserinfoURL())
	require.Empty(t, p.GetAuthentikURL())
}
