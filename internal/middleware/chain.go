package middleware

import "net/http"

// Chain wraps h so the first middleware listed sees the request first.
// routes.SetupRoutes puts AuthMiddleware ahead of RequestLogging so log
// lines carry the user id.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
