package middleware

import (
	"net/http"
	"storefront-be/internal/auth"
	"storefront-be/internal/utils"
)

// SessionResolver is the auth collaborator: it maps a request to a session,
// or nil when the request is anonymous.
type SessionResolver interface {
	CurrentSession(r *http.Request) *auth.Session
}

// AuthMiddleware is passive: anonymous or badly-signed requests pass through
// without a user in context, and handlers decide whether that is acceptable.
func AuthMiddleware(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := resolver.CurrentSession(r)
			if session == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), session.UserID, session.Email, session.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// InternalAuth marks requests that present the shared service secret.
func InternalAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret != "" && r.Header.Get(ServiceAuthHeader) == secret {
				r = r.WithContext(utils.WithInternalRequest(r.Context()))
			}
			next.ServeHTTP(w, r)
		})
	}
}
