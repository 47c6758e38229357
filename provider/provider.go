package provider

import "strings"

// ID identifies an upstream identity provider.
type ID string

const (
	// Google is a confidential client: token exchange requires a client
	// secret.
	Google ID = "google"

	// Authentik is a generic OIDC provider configured as a public client
	// (PKCE only, no secret).
	Authentik ID = "authentik"
)

// Config fully describes one upstream provider: where to exchange codes,
// where to probe userinfo, which credentials to present, and how to map its
// userinfo claims onto the gateway's identity shape.
type Config struct {
	ID ID

	// TokenURL is the provider's OAuth2 token endpoint.
	TokenURL string

	// UserinfoURL is the provider's OIDC userinfo endpoint. Doubles as the
	// verification oracle for opaque bearer tokens.
	UserinfoURL string

	ClientID string

	// ClientSecret is empty for public clients and never sent for them.
	ClientSecret string

	// Public marks a PKCE-only client. Confidential clients without a
	// secret count as unconfigured.
	Public bool

	// NameClaims lists the userinfo keys consulted for the display name,
	// in priority order.
	NameClaims []string
}

// Configured reports whether the provider has everything it needs to be
// called. An unconfigured provider must fail fast and never reach the
// network.
func (c Config) Configured() bool {
	if c.TokenURL == "" || c.UserinfoURL == "" || c.ClientID == "" {
		return false
	}
	if !c.Public && c.ClientSecret == "" {
		return false
	}
	return true
}

// NewGoogle builds the Google provider configuration. Endpoints default to
// Google's public OAuth2 endpoints via config but are injectable for tests.
func NewGoogle(clientID, clientSecret, tokenURL, userinfoURL string) Config {
	return Config{
		ID:           Google,
		TokenURL:     tokenURL,
		UserinfoURL:  userinfoURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		NameClaims:   []string{"name"},
	}
}

// NewAuthentik builds the Authentik provider configuration from its base
// URL. An empty base URL yields an unconfigured provider.
func NewAuthentik(baseURL, clientID string) Config {
	cfg := Config{
		ID:         Authentik,
		ClientID:   clientID,
		Public:     true,
		NameClaims: []string{"preferred_username", "name"},
	}
	if baseURL != "" {
		base := strings.TrimSuffix(baseURL, "/")
		cfg.TokenURL = base + "/application/o/token/"
		cfg.UserinfoURL = base + "/application/o/userinfo/"
	}
	return cfg
}
