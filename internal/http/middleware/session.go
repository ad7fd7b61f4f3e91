// Package middleware holds the http.Handler wrappers shared by all routes.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aanand-mishra/booknest-api/internal/auth"
	"github.com/aanand-mishra/booknest-api/internal/utils/response"
)

type contextKey struct{}

// TokenVerifier is the part of auth.TokenService the middleware needs.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It returns "" when the header is absent or uses another scheme.
func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireSession rejects requests without a valid session token.
//
// A missing token is always 401. A token that is present but fails
// verification gets invalidStatus: the profile route answers 403 there,
// the protected list routes answer 401.
func RequireSession(verifier TokenVerifier, invalidStatus int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				response.WriteJSON(w, http.StatusUnauthorized,
					response.Message("Access token missing"))
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				slog.Info("rejected session token", slog.String("error", err.Error()))
				response.WriteJSON(w, invalidStatus,
					response.Message("Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims stores verified claims on ctx.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// ClaimsFrom returns the claims stored by RequireSession.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*auth.Claims)
	return claims, ok
}
