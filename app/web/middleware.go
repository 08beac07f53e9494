package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// requestID tags every request with an id, either the caller's X-Request-ID
// or a fresh one, and logs the request with its duration.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))

		log.Printf("[DEBUG] %s %s id=%s took %s", r.Method, r.URL.Path, id, time.Since(start))
	})
}

// RequestID returns the id attached to ctx by the middleware, or "".
func RequestID(ctx context.Context) string {
	if v := ctx.Value(requestIDKey{}); v != nil {
		return v.(string)
	}
	return ""
}
