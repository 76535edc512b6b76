// Package requestid assigns a correlation ID to every inbound request.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"idrelay/pkg/requestcontext"
)

// Header is the inbound/outbound correlation header.
const Header = "X-Request-Id"

// Middleware propagates the caller's request ID or mints a fresh UUID, storing
// it in the request context and echoing it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(Header)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(Header, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
