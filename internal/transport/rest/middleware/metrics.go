package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/murkotick/storefront-service/internal/pkg/metrics"
)

func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			done := m.RequestStarted()
			next.ServeHTTP(rec, r)
			done(strings.ToUpper(r.Method), routeTemplate(r), rec.status, time.Since(start))
		})
	}
}
