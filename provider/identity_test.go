package provider_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/jrsteele09/go-auth-gateway/provider"
)

func TestNormalize(t *testing.T) {
	google := provider.NewGoogle("gid", "gsecret", "https://t", "https://u")
	authentik := provider.NewAuthentik("https://sso.example.com", "aid")

	t.Run("google maps name claim", func(t *testing.T) {
		identity, err := google.Normalize(map[string]any{
			"sub":     "108977",
			"email":   "alice@example.com",
			"name":    "Alice A.",
			"picture": "https://img.example.com/a.png",
		})
		require.NoError(t, err)
		require.Equal(t, "108977", identity.Subject)
		require.Equal(t, "alice@example.com", identity.Email)
		require.Equal(t, "Alice A.", *identity.Name)
		require.Equal(t, "https://img.example.com/a.png", *identity.Picture)
		require.Equal(t, provider.Google, identity.Provider)
	})

	t.Run("authentik prefers preferred_username over name", func(t *testing.T) {
		identity, err := authentik.Normalize(map[string]any{
			"sub":                "u-1",
			"email":              "alice@example.com",
			"preferred_username": "alice",
			"name":               "Alice A.",
		})
		require.NoError(t, err)
		require.Equal(t, "alice", *identity.Name)
	})

	t.Run("authentik falls back to name", func(t *testing.T) {
		identity, err := authentik.Normalize(map[string]any{
			"sub":   "u-1",
			"email": "alice@example.com",
			"name":  "Alice A.",
		})
		require.NoError(t, err)
		require.Equal(t, "Alice A.", *identity.Name)
	})

	t.Run("optional claims stay absent", func(t *testing.T) {
		identity, err := google.Normalize(map[string]any{
			"sub":   "u-1",
			"email": "alice@example.com",
		})
		require.NoError(t, err)
		require.Nil(t, identity.Name)
		require.Nil(t, identity.Picture)
	})

	t.Run("missing sub is a protocol violation", func(t *testing.T) {
		_, err := google.Normalize(map[string]any{"email": "alice@example.com"})
		require.True(t, errors.Is(err, errors.ErrUpstreamProtocol))
	})

	t.Run("missing email is a protocol violation", func(t *testing.T) {
		_, err := google.Normalize(map[string]any{"sub": "u-1"})
		require.True(t, errors.Is(err, errors.ErrUpstreamProtocol))
	})

	t.Run("non-string claims are ignored", func(t *testing.T) {
		identity, err := google.Normalize(map[string]any{
			"sub":   "u-1",
			"email": "alice@example.com",
			"name":  42,
		})
		require.NoError(t, err)
		require.Nil(t, identity.Name)
	})
}
