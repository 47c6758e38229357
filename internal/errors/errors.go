package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error types for the auth gateway
var (
	// Configuration errors
	ErrProviderNotConfigured = errors.New("provider is not configured")
	ErrUnknownProvider       = errors.New("unknown provider")

	// Request errors
	ErrInvalidRequest = errors.New("invalid request")

	// Upstream errors
	ErrUpstreamTimeout  = errors.New("upstream provider timed out")
	ErrExchangeRejected = errors.New("token exchange rejected by provider")
	ErrUserinfoRejected = errors.New("userinfo request rejected by provider")
	ErrUpstreamProtocol = errors.New("provider response violates protocol")

	// Authentication errors
	ErrMissingCredentials = errors.New("missing or malformed Authorization header")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// General errors
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// StatusCode maps a gateway error chain to the HTTP status it is reported
// with. Unknown errors are treated as internal.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnknownProvider),
		errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrExchangeRejected),
		errors.Is(err, ErrUserinfoRejected),
		errors.Is(err, ErrUpstreamProtocol):
		return http.StatusBadRequest
	case errors.Is(err, ErrMissingCredentials),
		errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUpstreamTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
