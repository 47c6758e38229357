package config

import "time"

// OAuthConfig bounds the gateway's upstream calls. Exchange calls get a
// longer budget than pure verification probes.
type OAuthConfig interface {
	GetExchangeTimeout() time.Duration
	GetVerifyTimeout() time.Duration
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetExchangeTimeout() time.Duration {
	return 15 * time.Second
}

func (OAuth) GetVerifyTimeout() time.Duration {
	return 10 * time.Second
}
