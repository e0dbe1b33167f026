package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"movein-app-go/internal/config"
	"github.com/gorilla/sessions"
)

const sessionName = "movein_session"

type contextKey int

const userIDKey contextKey = iota

// SessionAuth gates API routes on a signed session cookie holding the
// authenticated user id.
type SessionAuth struct {
	store *sessions.CookieStore
}

func NewSessionAuth(cfg config.SessionConfig, isProd bool) *SessionAuth {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionAuth{store: store}
}

func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := a.UserID(r)
		if !ok {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// UserID reads the session user without enforcing it, for routes that
// handle the unauthenticated case themselves (the OAuth callback).
func (a *SessionAuth) UserID(r *http.Request) (int64, bool) {
	session, err := a.store.Get(r, sessionName)
	if err != nil {
		return 0, false
	}
	userID, ok := session.Values["user_id"].(int64)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

func (a *SessionAuth) SignIn(w http.ResponseWriter, r *http.Request, userID int64) error {
	session, _ := a.store.Get(r, sessionName)
	session.Values["user_id"] = userID
	return session.Save(r, w)
}

func (a *SessionAuth) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := a.store.Get(r, sessionName)
	delete(session.Values, "user_id")
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    "unauthenticated",
			"message": "authentication required",
		},
	})
}
