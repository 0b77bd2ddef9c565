package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lmarquez/storefront-backend/api/responses"
)

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

// SessionCreate issues a fresh shopper session identifier. The client sends
// it back on every state-changing request via the X-Session-Id header.
func SessionCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := uuid.NewString()
		w.Header().Set("X-Session-Id", sessionID)
		responses.WriteSuccessStatus(w, http.StatusCreated, sessionResponse{SessionID: sessionID})
	}
}
