package provider

import (
	"github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/jrsteele09/go-auth-gateway/internal/utils"
)

// Identity is the gateway's canonical, provider-independent user identity.
// Name and Picture stay absent (nil) when the provider did not supply them.
type Identity struct {
	// Subject is the provider-scoped unique user identifier (OIDC "sub").
	Subject string `json:"sub"`

	// Email as asserted by the provider.
	Email string `json:"email"`

	// Name is the resolved display name, following the provider's claim
	// priority (e.g. Authentik prefers preferred_username over name).
	Name *string `json:"name,omitempty"`

	// Picture is the avatar URL, when the provider supplies one.
	Picture *string `json:"picture,omitempty"`

	// Provider tags which upstream produced this identity.
	Provider ID `json:"-"`
}

// Normalize maps a raw userinfo payload onto an Identity using the
// provider's claim table. sub and email are mandatory OIDC claims; their
// absence in an otherwise successful response is a protocol violation.
func (c Config) Normalize(claims map[string]any) (*Identity, error) {
	sub := StringClaim(claims, "sub")
	email := StringClaim(claims, "email")
	if sub == "" || email == "" {
		return nil, errors.Wrapf(errors.ErrUpstreamProtocol, "%s userinfo missing sub or email", c.ID)
	}
	return &Identity{
		Subject:  sub,
		Email:    email,
		Name:     utils.PtrIfSet(c.ResolveName(claims)),
		Picture:  utils.PtrIfSet(StringClaim(claims, "picture")),
		Provider: c.ID,
	}, nil
}

// ResolveName picks the display name from the raw claims following the
// provider's NameClaims priority. Empty when no candidate key is present.
func (c Config) ResolveName(claims map[string]any) string {
	for _, key := range c.NameClaims {
		if v := StringClaim(claims, key); v != "" {
			return v
		}
	}
	return ""
}

// StringClaim extracts a string-valued claim, empty when absent or not a
// string.
func StringClaim(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
