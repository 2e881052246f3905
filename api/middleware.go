package api

import (
	"net/http"
	"time"

	"github.com/safing/tabletext/log"
	"github.com/safing/tabletext/metrics"
)

// RequestLogger is a logging middleware.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ew := NewEnrichedResponseWriter(w)
		next.ServeHTTP(ew, r)

		if ew.Status == 0 {
			ew.Status = http.StatusOK
		}
		metrics.Counter("api_requests_total", "method", r.Method).Inc()
		log.Infof("api request: %s %d %s %s %s", r.RemoteAddr, ew.Status, r.Method, r.RequestURI, time.Since(start))
	})
}
