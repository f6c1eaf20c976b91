package http

import (
	"net/http"
	"time"

	"github.com/Komy007/kkshop-sub000/internal/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one entry per request and converts handler panics
// into 500 responses.
func RequestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			log := logger.WithContext(r.Context())

			defer func() {
				if p := recover(); p != nil {
					log.Error("http.request.panic", "method", r.Method, "path", r.URL.Path, "panic", p)
					writeJSON(rec, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
				}
				log.Info("http.request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", rec.status,
					"duration_ms", time.Since(start).Milliseconds(),
				)
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
