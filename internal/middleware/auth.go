package middleware

import (
	"net/http"
	"strings"

	"ayitichat/internal/auth"
	"ayitichat/internal/httputil"
)

// publicPrefixes are routes served without a bearer token: health checks,
// public share pages, guest endpoints, and the Stripe webhook (which
// authenticates via its signature header instead).
var publicPrefixes = []string{
	"/health",
	"/api/shares/",
	"/api/guest/",
	"/api/models",
	"/api/plans",
	"/api/billing/webhook",
}

// AuthMiddleware verifies the Authorization bearer token against Supabase
// JWKS and stores the resolved user id in the request context.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token := strings.TrimPrefix(header, "Bearer ")
			if header == "" || token == header {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			r = httputil.WithUserID(r, claims.GetUserID())
			r = httputil.WithUserEmail(r, claims.Email)
			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
