package push

import (
	"encoding/json"
	"errors"
	"net/http"

	pushdomain "movein-app-go/internal/domain/push"
	"movein-app-go/internal/transport/httpserver/middleware"
	"movein-app-go/pkg/logger"
)

type Handlers struct {
	Push           *pushdomain.Service
	VAPIDPublicKey string
	log            logger.Logger
}

func New(push *pushdomain.Service, vapidPublicKey string, log logger.Logger) *Handlers {
	return &Handlers{
		Push:           push,
		VAPIDPublicKey: vapidPublicKey,
		log:            log,
	}
}

// subscribeRequest mirrors the browser PushSubscription.toJSON() shape.
// expirationTime is carried so strict decoding accepts real payloads; its
// value is not used.
type subscribeRequest struct {
	Endpoint       string          `json:"endpoint"`
	ExpirationTime json.RawMessage `json:"expirationTime"`
	Keys           struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

type subscribeResponse struct {
	ID       int64  `json:"id"`
	Endpoint string `json:"endpoint"`
}

func (h *Handlers) VAPIDKey(w http.ResponseWriter, r *http.Request) {
	if h.Push == nil || h.VAPIDPublicKey == "" {
		writeError(w, http.StatusServiceUnavailable, "push_disabled", "push notifications are not configured")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"public_key": h.VAPIDPublicKey})
}

func (h *Handlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	if h.Push == nil {
		writeError(w, http.StatusServiceUnavailable, "push_disabled", "push notifications are not configured")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	var req subscribeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	subscription, err := h.Push.Subscribe(r.Context(), pushdomain.SubscribeInput{
		UserID:   userID,
		Endpoint: req.Endpoint,
		P256dh:   req.Keys.P256dh,
		Auth:     req.Keys.Auth,
	})
	if err != nil {
		switch {
		case errors.Is(err, pushdomain.ErrEndpointRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "endpoint is required")
		case errors.Is(err, pushdomain.ErrKeysRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "p256dh and auth keys are required")
		default:
			h.log.InternalError("push.subscribe: subscribe failed", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, subscribeResponse{ID: subscription.ID, Endpoint: subscription.Endpoint})
}
