package handler

import (
	"context"
	"net/http"
	"time"

	"flight-query-service/pkg/logger"
)

// Pinger is anything that can report store reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler returns 200 when the store answers a ping within two seconds
func HealthHandler(store Pinger, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			log.Warn("Health check failed", "error", err)
			http.Error(w, "Unhealthy", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Healthy"))
	}
}
