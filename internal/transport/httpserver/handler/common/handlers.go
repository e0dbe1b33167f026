package common

import (
	"errors"
	"net/http"
	"net/url"

	"movein-app-go/internal/calendar"
	userdomain "movein-app-go/internal/domain/user"
	"movein-app-go/internal/transport/httpserver/middleware"
	"movein-app-go/pkg/logger"
)

const oauthState = "state-token"

type Handlers struct {
	Users    *userdomain.Service
	Sessions *middleware.SessionAuth
	Calendar *calendar.Client
	AppURL   string
	log      logger.Logger
}

func New(users *userdomain.Service, sessions *middleware.SessionAuth, cal *calendar.Client, appURL string, log logger.Logger) *Handlers {
	return &Handlers{
		Users:    users,
		Sessions: sessions,
		Calendar: cal,
		AppURL:   appURL,
		log:      log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	CalendarLinked bool   `json:"calendar_linked"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	authenticated, err := h.Users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, userdomain.ErrInvalidCredentials) {
			h.log.BusinessError("login: invalid credentials", err, "username", req.Username)
			WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
			return
		}
		h.log.InternalError("login: authenticate failed", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	if err := h.Sessions.SignIn(w, r, authenticated.ID); err != nil {
		h.log.InternalError("login: save session failed", err, "user_id", authenticated.ID)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	WriteJSON(w, http.StatusOK, toUserResponse(authenticated))
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.log.InternalError("logout: clear session failed", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	found, err := h.Users.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			WriteError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
			return
		}
		h.log.InternalError("me: get user failed", err, "user_id", userID)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	WriteJSON(w, http.StatusOK, toUserResponse(found))
}

// GoogleAuth redirects the session user to the consent screen.
func (h *Handlers) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	if h.Calendar == nil {
		WriteError(w, http.StatusServiceUnavailable, "calendar_disabled", "calendar integration is not configured")
		return
	}
	http.Redirect(w, r, h.Calendar.AuthCodeURL(oauthState), http.StatusFound)
}

// GoogleCallback exchanges the authorization code and stores the token pair
// on the user. Any failure redirects back to the app with ?error= rather
// than rendering an API error, since the browser lands here directly.
func (h *Handlers) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	redirect := func(errCode string) {
		target := h.AppURL
		if errCode != "" {
			target += "?error=" + url.QueryEscape(errCode)
		}
		http.Redirect(w, r, target, http.StatusFound)
	}

	if h.Calendar == nil {
		redirect("calendar_disabled")
		return
	}

	userID, ok := h.Sessions.UserID(r)
	if !ok {
		redirect("unauthenticated")
		return
	}

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.log.BusinessError("google callback: consent denied", errors.New(errParam), "user_id", userID)
		redirect("consent_denied")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		redirect("missing_code")
		return
	}

	tokens, err := h.Calendar.Exchange(r.Context(), code)
	if err != nil {
		h.log.InternalError("google callback: code exchange failed", err, "user_id", userID)
		redirect("exchange_failed")
		return
	}

	if _, err := h.Users.AttachTokens(r.Context(), userID, tokens); err != nil {
		h.log.InternalError("google callback: store tokens failed", err, "user_id", userID)
		redirect("token_store_failed")
		return
	}

	redirect("")
}

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Username:       u.Username,
		CalendarLinked: u.HasCalendarToken(),
	}
}
