package server

const (
	RouteHealth  = "/health"
	RouteMetrics = "/metrics"

	// Login API
	RouteLoginPrefix = "/api/login/"
	RouteLoginToken  = "/api/login/{provider}/token"
	RouteLoginMe     = "/api/login/me"
)
