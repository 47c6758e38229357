package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/jrsteele09/go-auth-gateway/internal/metrics"
	"github.com/jrsteele09/go-auth-gateway/provider"
)

// Providers should never need more than this for a userinfo payload.
const maxUserinfoBody = 1 << 20

// fetchUserinfo GETs the provider's userinfo endpoint with the given access
// token. operation labels the metrics ("userinfo" for the exchange flow,
// "verify" for bearer probes).
func (s *Service) fetchUserinfo(ctx context.Context, p provider.Config, operation, accessToken string, timeout time.Duration) (map[string]any, error) {
	claims, err := s.doUserinfo(ctx, p, accessToken, timeout)
	metrics.RecordUpstreamRequest(string(p.ID), operation, outcomeFor(err))
	return claims, err
}

func (s *Service) doUserinfo(ctx context.Context, p provider.Config, accessToken string, timeout time.Duration) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserinfoURL, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInternal, "%s userinfo request", p.ID)
	}
	req.Header.Set("Authorization", bearerPrefix+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errors.Wrapf(errors.ErrUpstreamTimeout, "%s userinfo", p.ID)
		}
		return nil, errors.Wrapf(errors.ErrInternal, "%s userinfo unreachable: %v", p.ID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUserinfoBody))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInternal, "%s userinfo read: %v", p.ID, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(errors.ErrUserinfoRejected, "%s responded %d: %s", p.ID, resp.StatusCode, body)
	}

	var claims map[string]any
	if err := json.Unmarshal(body, &claims); err != nil {
		return nil, errors.Wrapf(errors.ErrUpstreamProtocol, "%s userinfo not JSON: %v", p.ID, err)
	}
	return claims, nil
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errors.ErrUpstreamTimeout):
		return "timeout"
	case errors.Is(err, errors.ErrExchangeRejected), errors.Is(err, errors.ErrUserinfoRejected):
		return "rejected"
	default:
		return "error"
	}
}
