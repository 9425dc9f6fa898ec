package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// sanitize strips CR/LF from user-supplied values before they reach the log,
// so a crafted path cannot inject extra log lines.
var sanitize = strings.NewReplacer("\n", "", "\r", "").Replace

// Logger logs one line per request: method, path, status, and duration.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		log.Printf(
			"%s %s %d %s",
			sanitize(r.Method),
			sanitize(r.URL.Path),
			wrapped.status,
			time.Since(start),
		)
	})
}

// statusRecorder captures the status code written by the handler chain.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}
