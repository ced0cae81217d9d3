package router

import (
	"net/http"
	"strconv"
	"time"

	"flight-query-service/internal/interface/handler"
	"flight-query-service/pkg/logger"
	"flight-query-service/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries everything the router mounts
type Options struct {
	Flights        *handler.FlightHandler
	Store          handler.Pinger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	Logger         logger.Logger
	AllowedOrigins []string
}

// New builds the HTTP router: GET /flights, GET /health and GET /metrics
func New(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Recoverer(opts.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Group(func(api chi.Router) {
		api.Use(Instrument(opts.Metrics, opts.Logger))
		// inside Instrument so a recovered 500 is still counted and logged
		api.Use(Recoverer(opts.Logger))
		api.Get("/flights", opts.Flights.ListFlights)
	})

	r.Get("/health", handler.HealthHandler(opts.Store, opts.Logger))
	r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	return r
}

// Instrument records request metrics and logs one line per request
func Instrument(m *metrics.Metrics, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unknown"
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			duration := time.Since(start)

			m.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(duration.Seconds())

			log.Info("HTTP request completed",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"route", route,
				"query", r.URL.RawQuery,
				"status_code", status,
				"duration_ms", duration.Milliseconds(),
			)
		})
	}
}

// Recoverer turns a panic into a generic 500 and logs it
func Recoverer(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error("Recovered from panic",
						"request_id", middleware.GetReqID(r.Context()),
						"panic", rec,
					)
					http.Error(w, handler.MsgInternalError, http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
