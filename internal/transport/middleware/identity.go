package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kelime/kelime-backend/pkg/ctxutil"
)

// UserIDHeader carries the authenticated user's ID, set by the upstream gateway.
const UserIDHeader = "X-User-Id"

// Identity extracts the caller's identity from the X-User-Id header set
// by the upstream gateway. Authentication itself happens there; this
// service only requires a well-formed UUID.
func Identity() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(UserIDHeader)
			if raw == "" {
				http.Error(w, "missing X-User-Id header", http.StatusUnauthorized)
				return
			}
			userID, err := uuid.Parse(raw)
			if err != nil || userID == uuid.Nil {
				http.Error(w, "invalid X-User-Id header", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
