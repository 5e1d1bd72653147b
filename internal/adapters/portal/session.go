package portal

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"andaman_vendor/internal/adapters/auth"
	"andaman_vendor/internal/app"
)

const SessionCookie = "session"

type sessionKey struct{}

// ResolveSession turns the request's token into an app.Session once, at the
// top of the chain. A missing or bad token resolves to an anonymous session.
func ResolveSession(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := app.Session{Status: app.SessionAnonymous}
			raw := auth.BearerToken(r.Header.Get("Authorization"))
			if raw == "" {
				if c, err := r.Cookie(SessionCookie); err == nil {
					raw = c.Value
				}
			}
			if raw != "" {
				if id, err := tokens.Parse(raw); err == nil {
					sess = app.Session{Status: app.SessionAuthenticated, UserID: id.UserID, Role: id.Role, Token: raw}
				} else {
					log.Debug().Err(err).Msg("session token rejected")
				}
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
		})
	}
}

// SessionFrom returns the resolved session; without ResolveSession upstream
// the session is still resolving.
func SessionFrom(ctx context.Context) app.Session {
	s, ok := ctx.Value(sessionKey{}).(app.Session)
	if !ok {
		return app.Session{Status: app.SessionResolving}
	}
	return s
}

// RequireVendor redirects non-vendors to sign-in.
func RequireVendor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := app.GuardVendor(SessionFrom(r.Context()))
		if d.Redirect {
			http.Redirect(w, r, d.Target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
