package api

import (
	"net/http"
	"time"

	"github.com/matzehuels/screenflow/pkg/observability"
)

// statusRecorder captures the response status for the hooks middleware.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// hooksMiddleware reports request and response events to the registered
// HTTP hooks and logs slow requests.
func (s *Server) hooksMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, rec.status, duration)
		if duration > time.Second {
			s.logger.Warn("slow request", "method", r.Method, "path", r.URL.Path, "duration", duration)
		}
	})
}
