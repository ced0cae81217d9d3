package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/internal/usecase"
	"flight-query-service/pkg/logger"
	"flight-query-service/pkg/metrics"

	"github.com/go-chi/chi/v5/middleware"
)

// Plain-text bodies for the 404 and 500 responses
const (
	MsgNoMatch       = "No matching documents."
	MsgInternalError = "Error querying documents"
)

// FlightSearcher runs a parsed flight query
type FlightSearcher interface {
	Search(ctx context.Context, q entity.FlightQuery) ([]*entity.FlightRecord, error)
}

// FlightHandler serves GET /flights
type FlightHandler struct {
	searcher FlightSearcher
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// NewFlightHandler creates a new flight handler
func NewFlightHandler(searcher FlightSearcher, metrics *metrics.Metrics, logger logger.Logger) *FlightHandler {
	return &FlightHandler{
		searcher: searcher,
		metrics:  metrics,
		logger:   logger,
	}
}

// ListFlights answers 200 with a JSON array, 400 on malformed parameters,
// 404 when nothing matches and 500 on any store or processing failure.
func (h *FlightHandler) ListFlights(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("request_id", middleware.GetReqID(r.Context()))

	q, err := ParseFlightQuery(r.URL.Query())
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			log.Info("Rejected flight query", "param", verr.Param, "reason", verr.Reason)
			h.metrics.QueriesTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}
		log.Error("Error parsing flight query", "error", err)
		http.Error(w, MsgInternalError, http.StatusInternalServerError)
		return
	}

	flights, err := h.searcher.Search(r.Context(), q)
	switch {
	case errors.Is(err, usecase.ErrNoMatch):
		http.Error(w, MsgNoMatch, http.StatusNotFound)
		return
	case err != nil:
		log.Error("Error querying documents", "error", err)
		http.Error(w, MsgInternalError, http.StatusInternalServerError)
		return
	}

	body, err := json.Marshal(flights)
	if err != nil {
		log.Error("Error encoding flights", "error", err)
		h.metrics.ErrorsCount.WithLabelValues("encode_flights").Inc()
		http.Error(w, MsgInternalError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
