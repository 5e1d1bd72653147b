package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"andaman_vendor/internal/adapters/auth"
	"andaman_vendor/internal/adapters/observability"
	"andaman_vendor/internal/domain"
)

// Timeout bounds a handler and answers with the failure envelope when it
// runs out of time.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, `{"success":false,"data":null,"message":"Request timed out."}`)
	}
}

// statusWriter remembers the first status code written.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// routeOf prefers the chi pattern so ids do not explode label cardinality.
func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}

// Observe records one metric sample and one access-log line per request.
// 5xx responses are logged at warn level.
func Observe(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)

			route, status, took := routeOf(r), sw.Status(), time.Since(start)
			observability.ObserveHTTP(route, r.Method, status, took)

			ev := l.Info()
			if status >= http.StatusInternalServerError {
				ev = l.Warn()
			}
			ev.Str("request_id", chimw.GetReqID(r.Context())).
				Str("route", route).
				Str("method", r.Method).
				Int("status", status).
				Dur("duration", took).
				Str("remote", remoteHost(r.RemoteAddr)).
				Msg("http_request")
		})
	}
}

// remoteHost strips the port; chi's RealIP has already applied proxy headers.
func remoteHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// ---- Bearer authentication ----

type principalKey struct{}

// Authenticate requires a valid bearer token and stores the caller's
// principal on the request context.
func Authenticate(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := auth.BearerToken(r.Header.Get("Authorization"))
			if raw == "" {
				writeFailure(w, http.StatusUnauthorized, "Authentication required.")
				return
			}
			id, err := tokens.Parse(raw)
			if err != nil {
				log.Debug().Err(err).Msg("rejected bearer token")
				writeFailure(w, http.StatusUnauthorized, "Authentication required.")
				return
			}
			p := domain.Principal{UserID: id.UserID, Role: id.Role, Token: raw}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, p)))
		})
	}
}

func principalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}
