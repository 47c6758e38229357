package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-auth-gateway/internal/config"
	"github.com/jrsteele09/go-auth-gateway/server"
)

// testConfig satisfies config.Config with the upstream endpoints pointed at
// a local fake provider.
type testConfig struct {
	config.Cors
	config.OAuth
	googleTokenURL    string
	googleUserinfoURL string
	authentikURL      string
}

func (testConfig) GetPort() string    { return ":0" }
func (testConfig) GetAppName() string { return "test" }
func (testConfig) GetEnv() string     { return "TEST" }
func (testConfig) GetDebugMode() bool { return false }

func (c testConfig) GetGoogleClientID() string     { return "google-client" }
func (c testConfig) GetGoogleClientSecret() string { return "google-secret" }
func (c testConfig) GetGoogleTokenURL() string     { return c.googleTokenURL }
func (c testConfig) GetGoogleUserinfoURL() string  { return c.googleUserinfoURL }
func (c testConfig) GetAuthentikURL() string       { return c.authentikURL }
func (c testConfig) GetAuthentikClientID() string  { return "authentik-client" }

// fakeGoogle stands in for Google's token and userinfo endpoints.
func fakeGoogle(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3599}`))
	})
	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer at-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_token"}`))
			return
		}
		_, _ = w.Write([]byte(`{"sub":"108977","email":"alice@example.com","name":"Alice A."}`))
	})
	return httptest.NewServer(mux)
}

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	upstream := fakeGoogle(t)
	t.Cleanup(upstream.Close)
	return server.New(testConfig{
		googleTokenURL:    upstream.URL + "/token",
		googleUserinfoURL: upstream.URL + "/userinfo",
	})
}

func exchangeBody() string {
	return `{
		"code": "good-code",
		"redirect_uri": "https://app.example.com/callback",
		"code_verifier": "` + strings.Repeat("v", 43) + `"
	}`
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenExchangeEndpoint(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		srv := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/login/google/token", strings.NewReader(exchangeBody()))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "at-1", body["access_token"])
		userinfo, ok := body["userinfo"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "alice@example.com", userinfo["email"])
		require.Equal(t, "Alice A.", userinfo["name"])
	})

	t.Run("rejected code surfaces the upstream body", func(t *testing.T) {
		srv := newTestServer(t)

		body := strings.Replace(exchangeBody(), "good-code", "bad-code", 1)
		req := httptest.NewRequest(http.MethodPost, "/api/login/google/token", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Contains(t, resp["detail"], "invalid_grant")
	})

	t.Run("unknown provider", func(t *testing.T) {
		srv := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/login/github/token", strings.NewReader(exchangeBody()))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "detail")
	})

	t.Run("unconfigured provider", func(t *testing.T) {
		srv := newTestServer(t) // authentikURL empty

		req := httptest.NewRequest(http.MethodPost, "/api/login/authentik/token", strings.NewReader(exchangeBody()))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := newTestServer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/login/google/token", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid request body")
	})
}

func TestMeEndpoint(t *testing.T) {
	t.Run("verified bearer token", func(t *testing.T) {
		srv := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/login/me", nil)
		req.Header.Set("Authorization", "Bearer at-1")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "108977", body["sub"])
		require.Equal(t, "alice@example.com", body["email"])
		require.Equal(t, "Alice A.", body["name"])
		require.Equal(t, "google", body["provider"])

		role, present := body["role"]
		require.True(t, present)
		require.Nil(t, role)
	})

	t.Run("missing header", func(t *testing.T) {
		srv := newTestServer(t)

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/login/me", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp["detail"])
	})

	t.Run("token no provider accepts", func(t *testing.T) {
		srv := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/login/me", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCorsPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/login/me", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	// Wildcard responses must not allow credentials
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRecoverMiddleware(t *testing.T) {
	srv := newTestServer(t)

	handler := server.ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}, srv.RecoverMiddleware)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/login/me", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "internal error")
}

func TestRequestIDPassthrough(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/login/me", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}
