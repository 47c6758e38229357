package oauthmodel

import (
	"github.com/go-playground/validator/v10"

	"github.com/jrsteele09/go-auth-gateway/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ExchangeRequest holds the parameters for an authorization-code exchange.
// This is the JSON body of the /api/login/{provider}/token endpoint.
type ExchangeRequest struct {
	// Code is the single-use authorization code from the OAuth redirect.
	// Required: Yes
	// Example: "SplxlOBeZQQYbYS6WxSbIA"
	Code string `json:"code" validate:"required"`

	// RedirectURI must equal the redirect URI used in the authorization
	// request. The gateway does not re-validate the match; the provider
	// enforces it during the exchange.
	// Required: Yes
	RedirectURI string `json:"redirect_uri" validate:"required"`

	// CodeVerifier is the PKCE code verifier matching the code_challenge
	// sent during authorization.
	// Required: Yes
	// Length: 43-128 characters per RFC 7636
	CodeVerifier string `json:"code_verifier" validate:"required,min=43,max=128"`
}

// Validate checks the request before any network call is made. A verifier
// outside the RFC 7636 length bounds never reaches a provider.
func (r ExchangeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.Wrapf(errors.ErrInvalidRequest, "%v", err)
	}
	return nil
}
