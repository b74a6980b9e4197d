package middleware

import (
	"net/http"
	"time"
)

// Logging пишет в лог метод, путь, статус и длительность каждого запроса
// 5xx логируются как Error, 4xx как Warn
func Logging(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			rid, _ := GetRequestID(r.Context())
			latency := time.Since(start)

			switch {
			case rec.status >= http.StatusInternalServerError:
				log.Error("HTTP %s %s - status=%d, latency=%s, request_id=%s", r.Method, r.URL.Path, rec.status, latency, rid)
			case rec.status >= http.StatusBadRequest:
				log.Warn("HTTP %s %s - status=%d, latency=%s, request_id=%s", r.Method, r.URL.Path, rec.status, latency, rid)
			default:
				log.Info("HTTP %s %s - status=%d, latency=%s, request_id=%s", r.Method, r.URL.Path, rec.status, latency, rid)
			}
		})
	}
}
