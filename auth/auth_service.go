package auth

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-auth-gateway/internal/config"
	"github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/jrsteele09/go-auth-gateway/internal/metrics"
	"github.com/jrsteele09/go-auth-gateway/internal/utils"
	"github.com/jrsteele09/go-auth-gateway/oauthmodel"
	"github.com/jrsteele09/go-auth-gateway/provider"
)

// Service brokers authorization-code exchanges and bearer-token verification
// against the registered identity providers. One instance serves all
// requests; it holds no per-request state.
type Service struct {
	registry        *provider.Registry
	client          *http.Client
	exchangeTimeout time.Duration
	verifyTimeout   time.Duration
}

// NewService creates the gateway's core service. The shared HTTP client
// carries no global timeout; every upstream call is bounded by its own
// context deadline.
func NewService(registry *provider.Registry, cfg config.OAuthConfig) *Service {
	return &Service{
		registry:        registry,
		client:          &http.Client{},
		exchangeTimeout: cfg.GetExchangeTimeout(),
		verifyTimeout:   cfg.GetVerifyTimeout(),
	}
}

// Exchange swaps a single-use authorization code for the provider's token
// set, immediately fetches userinfo for the new access token, and returns
// both. Every failure is terminal: authorization codes are single-use, so
// nothing here retries.
func (s *Service) Exchange(ctx context.Context, id provider.ID, req oauthmodel.ExchangeRequest) (*oauthmodel.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.registry.Lookup(id)
	if err != nil {
		return nil, err
	}
	if !p.Configured() {
		return nil, errors.Wrapf(errors.ErrProviderNotConfigured, "%s", p.ID)
	}

	tok, err := s.exchangeCode(ctx, p, req)
	if err != nil {
		return nil, err
	}
	logIDTokenClaims(p.ID, tok)

	claims, err := s.fetchUserinfo(ctx, p, "userinfo", tok.AccessToken, s.exchangeTimeout)
	if err != nil {
		return nil, err
	}

	identity, err := p.Normalize(claims)
	if err != nil {
		return nil, err
	}

	resp := &oauthmodel.TokenResponse{
		AccessToken:  tok.AccessToken,
		RefreshToken: utils.PtrIfSet(tok.RefreshToken),
		ExpiresIn:    utils.PtrIfSet(tok.ExpiresIn),
		Userinfo:     *identity,
	}
	if idToken, ok := tok.Extra("id_token").(string); ok && idToken != "" {
		resp.IdToken = utils.Ptr(idToken)
	}
	return resp, nil
}

// exchangeCode POSTs the authorization-code grant to the provider's token
// endpoint. AuthStyleInParams puts client_id (and client_secret only when
// present, so public clients never send one) in the form body alongside
// code, redirect_uri and code_verifier.
func (s *Service) exchangeCode(ctx context.Context, p provider.Config, req oauthmodel.ExchangeRequest) (*oauth2.Token, error) {
	conf := &oauth2.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		RedirectURL:  req.RedirectURI,
		Endpoint: oauth2.Endpoint{
			TokenURL:  p.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx, cancel := context.WithTimeout(ctx, s.exchangeTimeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.client)

	tok, err := conf.Exchange(ctx, req.Code, oauth2.SetAuthURLParam("code_verifier", req.CodeVerifier))
	if err != nil {
		err = mapExchangeError(p.ID, err)
		metrics.RecordUpstreamRequest(string(p.ID), "exchange", outcomeFor(err))
		return nil, err
	}
	if tok.AccessToken == "" {
		// x/oauth2 guards this itself; the invariant still belongs here.
		metrics.RecordUpstreamRequest(string(p.ID), "exchange", "error")
		return nil, errors.Wrapf(errors.ErrUpstreamProtocol, "%s token response missing access_token", p.ID)
	}
	metrics.RecordUpstreamRequest(string(p.ID), "exchange", "ok")
	return tok, nil
}

// mapExchangeError sorts an x/oauth2 exchange failure into the gateway
// taxonomy: deadline -> timeout, provider rejection -> exchange error with
// the upstream body embedded, transport trouble -> internal, anything else
// (unparseable success body, missing access_token) -> protocol violation.
func mapExchangeError(id provider.ID, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrapf(errors.ErrUpstreamTimeout, "%s token exchange", id)
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		return errors.Wrapf(errors.ErrExchangeRejected, "%s responded %d: %s", id, status, string(retrieveErr.Body))
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errors.Wrapf(errors.ErrInternal, "%s token endpoint unreachable: %v", id, urlErr.Err)
	}

	return errors.Wrapf(errors.ErrUpstreamProtocol, "%s token response malformed: %v", id, err)
}

// logIDTokenClaims surfaces the returned id_token's claims at debug level.
// The parse is unverified on purpose: the gateway never trusts id_token
// contents, verification goes through the userinfo endpoint.
func logIDTokenClaims(id provider.ID, tok *oauth2.Token) {
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		return
	}
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		log.Debug().Err(err).Str("provider", string(id)).Msg("id_token not parseable")
		return
	}
	log.Debug().
		Str("provider", string(id)).
		Any("iss", claims["iss"]).
		Any("sub", claims["sub"]).
		Any("exp", claims["exp"]).
		Msg("id_token claims (unverified)")
}
