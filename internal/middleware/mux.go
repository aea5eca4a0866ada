package middleware

import (
	"net/http"
	"time"

	"github.com/KOFI-GYIMAH/github-repos/pkg/logger"
)

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rr := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rr, r)

		logger.Info("%s %s %d %dB %s", r.Method, r.RequestURI, rr.statusCode, rr.bytes, time.Since(start))
	})
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.statusCode = code
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	n, err := rr.ResponseWriter.Write(b)
	rr.bytes += n
	return n, err
}

// * Flush keeps streamed responses flowing through the recorder
func (rr *responseRecorder) Flush() {
	if f, ok := rr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
