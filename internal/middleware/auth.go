package middleware

import (
	"net/http"

	"github.com/fitweb/fitweb/internal/ctxkeys"
	"github.com/fitweb/fitweb/internal/service"
)

// SessionMiddleware resolves the signed session cookie to a persisted session
// and adds it to the request context. Anything invalid clears the cookie and
// continues unauthenticated; the route guards decide what that means.
func SessionMiddleware(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.SessionCookieName)
			if err != nil {
				// No cookie, continue without a session
				next.ServeHTTP(w, r)
				return
			}

			sessionID, err := sessions.VerifyCookie(cookie.Value)
			if err != nil {
				// Tampered or expired cookie, clear it and continue
				sessions.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			session, err := sessions.ByID(sessionID)
			if err != nil {
				// Row gone (logout elsewhere, upstream invalidation, expiry)
				sessions.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession guards the API routes: no session in context means 401.
func RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.Session(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	}
}
