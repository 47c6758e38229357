package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/jrsteele09/go-auth-gateway/oauthmodel"
	"github.com/jrsteele09/go-auth-gateway/provider"
)

const contentTypeJSON = "application/json; charset=utf-8"

// TokenExchange exchanges an authorization code for tokens against the
// provider named in the path, and returns the token set together with the
// normalized userinfo.
func (s *Server) TokenExchange() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providerID := provider.ID(r.PathValue("provider"))

		var req oauthmodel.ExchangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		resp, err := s.auth.Exchange(r.Context(), providerID, req)
		if err != nil {
			writeJSONError(w, err.Error(), errors.StatusCode(err))
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		writeJSON(w, resp, http.StatusOK)
	}
}

// Me verifies the bearer token in the Authorization header against the
// provider chain and reports the current user. The provider tag always
// comes from the verifier's answer; there is no fallback value.
func (s *Server) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, id, err := s.auth.VerifyBearer(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			writeJSONError(w, err.Error(), errors.StatusCode(err))
			return
		}

		p, err := s.registry.Lookup(id)
		if err != nil {
			writeJSONError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, oauthmodel.NewMeResponse(p, claims), http.StatusOK)
	}
}

// Health is the liveness probe.
func (s *Server) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	}
}

func writeJSON(w http.ResponseWriter, v any, statusCode int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes an error response; detail embeds any upstream
// provider response verbatim.
func writeJSONError(w http.ResponseWriter, detail string, statusCode int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"detail": detail,
	})
}
