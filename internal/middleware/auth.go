package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"clinic-booking-api/internal/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// Claims returns the decoded token claims attached by RequireAuth.
func Claims(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey).(*auth.Claims)
	return c
}

func deny(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// decoded claims to the request context. Claims are trusted as-is: no user
// lookup happens here.
func RequireAuth(secret string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			raw := bearer(r)
			if raw == "" {
				deny(w, http.StatusUnauthorized, "access denied: no token provided")
				return
			}
			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				deny(w, http.StatusForbidden, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireAdmin is RequireAuth plus a role check on the token claims.
func RequireAdmin(secret string) func(http.HandlerFunc) http.HandlerFunc {
	authed := RequireAuth(secret)
	return func(next http.HandlerFunc) http.HandlerFunc {
		return authed(func(w http.ResponseWriter, r *http.Request) {
			if Claims(r.Context()).Role != "admin" {
				deny(w, http.StatusForbidden, "access denied: admin only")
				return
			}
			next(w, r)
		})
	}
}
