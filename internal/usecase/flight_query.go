package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/internal/domain/repository"
	"flight-query-service/pkg/logger"
	"flight-query-service/pkg/metrics"
	"flight-query-service/pkg/utils"
)

// ErrNoMatch is returned when no flight satisfies every filter
var ErrNoMatch = errors.New("no matching documents")

// FlightQueryService runs flight searches: store-side predicates first,
// then the facility, price and clock-time checks, then sorting.
type FlightQueryService struct {
	flightRecordRepo repository.FlightRecordRepository
	metrics          *metrics.Metrics
	logger           logger.Logger
	queryTimeout     time.Duration
}

// NewFlightQueryService creates a new query service. A zero timeout leaves the store call unbounded.
func NewFlightQueryService(
	flightRecordRepo repository.FlightRecordRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
	queryTimeout time.Duration,
) *FlightQueryService {
	return &FlightQueryService{
		flightRecordRepo: flightRecordRepo,
		metrics:          metrics,
		logger:           logger,
		queryTimeout:     queryTimeout,
	}
}

// Search returns the matching flights, or ErrNoMatch when there are none
func (s *FlightQueryService) Search(ctx context.Context, q entity.FlightQuery) ([]*entity.FlightRecord, error) {
	candidates, err := s.fetch(ctx, repository.FilterFromQuery(q))
	if err != nil {
		s.metrics.QueriesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		s.metrics.ErrorsCount.WithLabelValues("find_flights").Inc()
		return nil, err
	}

	if len(candidates) == 0 {
		s.logger.Info("No flights matched", "reason", metrics.OutcomeStoreEmpty)
		s.metrics.QueriesTotal.WithLabelValues(metrics.OutcomeStoreEmpty).Inc()
		return nil, ErrNoMatch
	}

	flights := make([]*entity.FlightRecord, 0, len(candidates))
	for _, flight := range candidates {
		if Matches(flight, q) {
			flights = append(flights, flight)
		}
	}

	if len(flights) == 0 {
		s.logger.Info("No flights matched", "reason", metrics.OutcomeFilteredOut, "candidates", len(candidates))
		s.metrics.QueriesTotal.WithLabelValues(metrics.OutcomeFilteredOut).Inc()
		return nil, ErrNoMatch
	}

	SortFlights(flights, q.SortBy, q.SortOrder)

	s.logger.Debug("Flights matched", "candidates", len(candidates), "returned", len(flights))
	s.metrics.QueriesTotal.WithLabelValues(metrics.OutcomeFound).Inc()
	s.metrics.RecordsReturned.Observe(float64(len(flights)))

	return flights, nil
}

func (s *FlightQueryService) fetch(ctx context.Context, filter repository.FlightFilter) ([]*entity.FlightRecord, error) {
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	start := time.Now()
	records, err := s.flightRecordRepo.Find(ctx, filter)
	s.metrics.StoreQueryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("query flight store: %w", err)
	}
	return records, nil
}

// Matches applies the checks the store does not evaluate
func Matches(flight *entity.FlightRecord, q entity.FlightQuery) bool {
	if !flight.HasFacilities(q.Facilities) {
		return false
	}
	if q.MinPrice != nil && flight.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && flight.Price > *q.MaxPrice {
		return false
	}
	return withinTimeRange(flight.DepartureTime, q.DepartureTime) &&
		withinTimeRange(flight.ArrivalTime, q.ArrivalTime)
}

// A stored time that cannot be parsed fails any bound placed on it
func withinTimeRange(value string, r entity.TimeRange) bool {
	if !r.IsSet() {
		return true
	}
	minute, err := utils.ParseMinuteOfDay(value)
	if err != nil {
		return false
	}
	return r.Contains(minute)
}

// SortFlights orders flights in place by key. Equal keys keep their
// relative order; records whose time does not parse go last.
func SortFlights(flights []*entity.FlightRecord, key entity.SortKey, order entity.SortOrder) {
	if key == entity.SortNone {
		return
	}

	desc := order == entity.SortDesc
	slices.SortStableFunc(flights, func(a, b *entity.FlightRecord) int {
		switch key {
		case entity.SortByPrice:
			return directed(cmp.Compare(a.Price, b.Price), desc)
		case entity.SortByDeparture:
			return compareClock(a.DepartureTime, b.DepartureTime, desc)
		case entity.SortByArrival:
			return compareClock(a.ArrivalTime, b.ArrivalTime, desc)
		}
		return 0
	})
}

func compareClock(a, b string, desc bool) int {
	ma, errA := utils.ParseMinuteOfDay(a)
	mb, errB := utils.ParseMinuteOfDay(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	return directed(cmp.Compare(ma, mb), desc)
}

func directed(c int, desc bool) int {
	if desc {
		return -c
	}
	return c
}
