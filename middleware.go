package main

import (
	"net/http"
	"strings"

	"balvis/httputil"
)

// requireAPIKey rejects requests without an X-API-Key header. The key is the
// caller's own LLM API key and is forwarded upstream, never stored.
func (a *App) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if clientKey(r) == "" {
			httputil.WriteError(w, 401, "API key is required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-API-Key"))
}
