package provider

import (
	"github.com/jrsteele09/go-auth-gateway/internal/errors"
)

// Registry holds the configured providers. Registration order is the bearer
// verification priority: when a token happens to validate against more than
// one provider, the earliest registered one wins. Immutable after
// construction, so concurrent reads need no locking.
type Registry struct {
	ordered []Config
	byID    map[ID]Config
}

// NewRegistry registers providers in priority order. Provider IDs must be
// unique; a duplicate silently replaces the earlier entry in lookups but
// keeps the original position in the probe chain.
func NewRegistry(list ...Config) *Registry {
	byID := make(map[ID]Config, len(list))
	for _, p := range list {
		byID[p.ID] = p
	}
	return &Registry{ordered: list, byID: byID}
}

// Lookup returns the configuration for a provider ID. Unknown IDs error;
// known but unconfigured providers are returned as-is so callers can
// distinguish "no such provider" from "provider missing credentials".
func (r *Registry) Lookup(id ID) (Config, error) {
	p, ok := r.byID[id]
	if !ok {
		return Config{}, errors.Wrapf(errors.ErrUnknownProvider, "%q", id)
	}
	return p, nil
}

// Ordered returns all registered providers in probe-priority order,
// including unconfigured ones (verifiers skip those).
func (r *Registry) Ordered() []Config {
	return r.ordered
}
