package oauthmodel

import (
	"github.com/jrsteele09/go-auth-gateway/internal/utils"
	"github.com/jrsteele09/go-auth-gateway/provider"
)

// TokenResponse is the result of a successful authorization-code exchange:
// the provider's raw token set plus the normalized identity fetched from its
// userinfo endpoint in the same operation.
type TokenResponse struct {
	// AccessToken is the provider-issued access token.
	// Always present: a success response without one is a protocol
	// violation and never reaches this struct.
	AccessToken string `json:"access_token"`

	// RefreshToken is the provider-issued refresh token, when granted.
	// The gateway passes it through untouched; rotation is out of scope.
	RefreshToken *string `json:"refresh_token,omitempty"`

	// IdToken is the OIDC ID token, when the provider returned one. The
	// gateway does not validate its signature; verification happens via
	// the userinfo probe.
	IdToken *string `json:"id_token,omitempty"`

	// ExpiresIn is the access token lifetime in seconds, when reported.
	ExpiresIn *int64 `json:"expires_in,omitempty"`

	// Userinfo is the normalized identity of the token's subject.
	Userinfo provider.Identity `json:"userinfo"`
}

// MeResponse describes the current user for the /api/login/me endpoint.
// Built leniently from the raw userinfo the accepting provider returned.
type MeResponse struct {
	Sub     *string `json:"sub,omitempty"`
	Email   string  `json:"email"`
	Name    *string `json:"name,omitempty"`
	Picture *string `json:"picture,omitempty"`

	// Provider identifies which configured provider accepted the token.
	Provider provider.ID `json:"provider"`

	// Role is always null: role assignment is out of the gateway's scope.
	Role *string `json:"role"`
}

// NewMeResponse builds a MeResponse from the raw userinfo claims the
// accepting provider returned. Lenient on purpose: /me reports whatever the
// provider asserted, it does not re-enforce the mandatory-claim contract.
func NewMeResponse(p provider.Config, claims map[string]any) MeResponse {
	return MeResponse{
		Sub:      utils.PtrIfSet(provider.StringClaim(claims, "sub")),
		Email:    provider.StringClaim(claims, "email"),
		Name:     utils.PtrIfSet(p.ResolveName(claims)),
		Picture:  utils.PtrIfSet(provider.StringClaim(claims, "picture")),
		Provider: p.ID,
	}
}
