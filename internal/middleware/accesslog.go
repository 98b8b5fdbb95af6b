package middleware

import (
	"net/http"
	"time"

	"github.com/jusunglee/railmap-go/internal/logging"
)

// AccessLog writes one structured entry per request
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := wrap(w)
		next.ServeHTTP(rw, r)

		event := logging.Ctx(r.Context()).Info()
		if rw.status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", rw.status).
			Int("bytes", rw.bytes).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	})
}
