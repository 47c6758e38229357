package auth

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/jrsteele09/go-auth-gateway/provider"
)

// Prefix match is case-sensitive: "bearer x" is rejected.
const bearerPrefix = "Bearer "

// VerifyBearer verifies an opaque bearer token of unknown origin by probing
// each configured provider's userinfo endpoint in registry order, first
// success wins. Individual probe failures are recovered here and never
// surfaced to the caller; the chain either returns the raw userinfo claims
// tagged with the accepting provider, or ErrInvalidToken once exhausted.
func (s *Service) VerifyBearer(ctx context.Context, authorization string) (map[string]any, provider.ID, error) {
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return nil, "", errors.ErrMissingCredentials
	}
	token := strings.TrimSpace(strings.TrimPrefix(authorization, bearerPrefix))

	for _, p := range s.registry.Ordered() {
		if !p.Configured() {
			continue
		}
		claims, err := s.fetchUserinfo(ctx, p, "verify", token, s.verifyTimeout)
		if err != nil {
			// Best-effort multi-issuer chain: a rejection only means
			// this provider did not issue the token.
			log.Debug().Err(err).Str("provider", string(p.ID)).Msg("bearer probe failed")
			continue
		}
		return claims, p.ID, nil
	}
	return nil, "", errors.ErrInvalidToken
}
