package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"timecard/internal/requestctx"
)

const requestIDHeader = "X-Request-ID"

// maxRequestIDLen caps what a caller may supply. An oversized id is
// replaced rather than truncated so log lines stay unambiguous.
const maxRequestIDLen = 64

// RequestID assigns each request an id, reusing the caller's header
// value when it is non-blank and within the length cap. The id travels
// on the context and is echoed in the response header and envelope.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(requestctx.WithRequestID(r.Context(), id)))
	})
}

// GetRequestID returns the id set by RequestID, or "" outside of it.
func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
