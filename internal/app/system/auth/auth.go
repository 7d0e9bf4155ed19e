// Package auth reads the signed session cookie shared with the identity
// service and exposes the current user to handlers.
//
// PeerHub does not issue sessions itself — sign-in, token issuance, and
// sign-out belong to the identity collaborator, which writes the session
// cookie with the same signing key. This package only verifies and loads it.
package auth

import (
	"context"
	"encoding/hex"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey      = "is_authenticated"
	userIDKey      = "user_id"
	userNameKey    = "user_name"
	userRoleKey    = "user_role"
	workspaceIDKey = "workspace_id"
)

// DevSessionKey is the placeholder key shipped in dev configs. When it is
// seen outside prod the manager swaps in a random per-process key so a
// leaked default can never validate real cookies.
const DevSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// SessionUser is what the session carries and what gets injected into
// r.Context().
type SessionUser struct {
	ID          string
	Name        string
	Role        string
	WorkspaceID string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// SessionManager validates session cookies and loads users into request
// context.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager. The key must be
// the signing key shared with the identity service; name is the cookie name.
func NewSessionManager(key, name, domain string, secure bool, log *zap.Logger) (*SessionManager, error) {
	if key == DevSessionKey {
		random := securecookie.GenerateRandomKey(32)
		key = hex.EncodeToString(random)
		log.Warn("session key is the dev placeholder; generated a random per-process key")
	}

	store := sessions.NewCookieStore([]byte(key))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{store: store, name: name, log: log}, nil
}

// CurrentUser returns the session user from context and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a session user directly into the request context.
// Test-only escape hatch for handler tests that bypass the middleware.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// LoadSessionUser injects the user into context if the request carries a
// valid session. Requests without a session pass through untouched.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			// Tampered or stale cookie: treat as signed out.
			next.ServeHTTP(w, r)
			return
		}
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:          getString(sess, userIDKey),
				Name:        getString(sess, userNameKey),
				Role:        getString(sess, userRoleKey),
				WorkspaceID: getString(sess, workspaceIDKey),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by
// LoadSessionUser). API callers get a plain JSON 401.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
	})
}

func getString(sess *sessions.Session, key string) string {
	s, _ := sess.Values[key].(string)
	return s
}
