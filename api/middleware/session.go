package middleware

import (
	"net/http"
	"strings"

	"github.com/lmarquez/storefront-backend/api/responses"
	pkgerrors "github.com/lmarquez/storefront-backend/pkg/errors"
	"github.com/lmarquez/storefront-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

// SessionContext requires the shopper session header on every request in
// the group and makes it available to downstream handlers. Requests without
// a session are refused before any state is touched.
func SessionContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(sessionIDHeader))
			if sessionID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "session context missing"))
				return
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
