package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// requestID tags every request with a correlation id and logs its arrival.
// Upstream proxies may supply their own id via X-Request-Id.
func requestID(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		logger.Debug("http request",
			"event", "http_request_received",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
		)
		next.ServeHTTP(w, r)
	})
}
