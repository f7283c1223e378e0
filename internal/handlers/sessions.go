package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/imobi/client/internal/session"
)

const (
	sessionCookieName = "imobi_sid"
	sessionCookieTTL  = 30 * 24 * time.Hour
)

type sessionContextKey struct{}

// browserSession is the session bound to one browser cookie. Login
// swaps it for a fresh one so a sid known before authentication never
// carries an authenticated session.
type browserSession struct {
	backend session.Backend
	secure  bool
	logger  *slog.Logger
	sid     string
	store   *session.Store
}

func (b *browserSession) scope(sid string) *session.Store {
	return session.NewStore(session.Scope(b.backend, sid+":"), b.logger)
}

func (b *browserSession) setCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    b.sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   b.secure,
		Expires:  time.Now().Add(sessionCookieTTL),
	})
}

// fresh returns an unused sid and its empty store.
func (b *browserSession) fresh() (string, *session.Store) {
	sid := uuid.NewString()
	return sid, b.scope(sid)
}

// adopt makes sid the browser's session, dropping whatever the previous
// sid held.
func (b *browserSession) adopt(ctx context.Context, w http.ResponseWriter, sid string, store *session.Store) {
	if err := b.store.ClearSession(ctx); err != nil {
		b.logger.WarnContext(ctx, "failed to clear replaced session", slog.Any("err", err))
	}
	b.sid, b.store = sid, store
	b.setCookie(w)
}

// WithSession binds each browser to its own session store. The browser
// is identified by a random cookie; the session itself lives in backend.
func WithSession(backend session.Backend, secureCookie bool, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b := &browserSession{backend: backend, secure: secureCookie, logger: logger}
			if cookie, err := r.Cookie(sessionCookieName); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					b.sid = cookie.Value
				}
			}
			if b.sid == "" {
				b.sid = uuid.NewString()
				b.setCookie(w)
			}
			b.store = b.scope(b.sid)

			ctx := context.WithValue(r.Context(), sessionContextKey{}, b)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func browserFromContext(ctx context.Context) *browserSession {
	b, ok := ctx.Value(sessionContextKey{}).(*browserSession)
	if !ok {
		// Without the middleware every request is anonymous.
		b = &browserSession{backend: session.NewMemoryBackend(), logger: slog.Default()}
		b.sid, b.store = b.fresh()
	}
	return b
}

func sessionFromContext(ctx context.Context) *session.Store {
	return browserFromContext(ctx).store
}

// RequireAuth redirects visitors without a session token to the login
// page, carrying the requested path so they come back after login.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := session.Gate(r.Context(), sessionFromContext(r.Context()), r.URL.RequestURI())
		if !decision.Authorized {
			http.Redirect(w, r, decision.Redirect, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole sends authenticated users lacking role to their own
// landing page. It must run after RequireAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := sessionFromContext(r.Context()).CurrentUser(r.Context())
			if !session.HasRole(user, role) {
				http.Redirect(w, r, session.ResolveLandingRoute(user), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
