// Package middleware holds HTTP middleware shared by the web layer.
package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/innoverse/regsvc/internal/config"
)

// AdminKeyAuth returns middleware that validates the x-admin-key header
// against the configured secret using a constant-time comparison. A missing
// or mismatched key gets 401; if no secret is configured, everything is
// rejected rather than left open.
func AdminKeyAuth(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("x-admin-key")

			if cfg.AdminKey == "" ||
				subtle.ConstantTimeCompare([]byte(key), []byte(cfg.AdminKey)) != 1 {
				slog.Warn("auth: admin key rejected",
					"path", r.URL.Path,
					"method", r.Method,
					"remote_addr", r.RemoteAddr,
					"key_present", key != "",
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success":false,"error":"unauthorized","code":"AUTH001"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
