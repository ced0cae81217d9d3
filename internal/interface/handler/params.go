package handler

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/pkg/utils"
)

// ValidationError reports a query parameter that could not be parsed
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

func invalid(param string, err error) *ValidationError {
	return &ValidationError{Param: param, Reason: err.Error()}
}

// ParseFlightQuery maps /flights query parameters onto a FlightQuery.
// Absent or empty parameters impose no constraint.
func ParseFlightQuery(values url.Values) (entity.FlightQuery, error) {
	q := entity.FlightQuery{
		Class:         values.Get("class"),
		CreatedAt:     values.Get("created_at"),
		DepartureDate: values.Get("departure_date"),
		FromLocation:  values.Get("from_location"),
		Number:        values.Get("number"),
		ReturnDate:    values.Get("return_date"),
		ReturnTime:    values.Get("return_time"),
		ToLocation:    values.Get("to_location"),
	}

	var err error
	if q.AvailableSeats, err = intList(values, "available_seats"); err != nil {
		return q, err
	}
	if q.BookedSeats, err = intList(values, "booked_seats"); err != nil {
		return q, err
	}
	if q.SeatAvailable, err = optionalInt(values, "seat_available"); err != nil {
		return q, err
	}
	if q.SeatMax, err = optionalInt(values, "seat_max"); err != nil {
		return q, err
	}
	if q.Price, err = optionalFloat(values, "price"); err != nil {
		return q, err
	}
	if q.MinPrice, err = optionalFloat(values, "min_price"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = optionalFloat(values, "max_price"); err != nil {
		return q, err
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return q, &ValidationError{Param: "min_price", Reason: "greater than max_price"}
	}

	if raw := values.Get("facilities"); raw != "" {
		q.Facilities = utils.SplitList(raw)
	}

	if q.DepartureTime, err = timeRange(values, "departure_time_start", "departure_time_end"); err != nil {
		return q, err
	}
	if q.ArrivalTime, err = timeRange(values, "arrival_time_start", "arrival_time_end"); err != nil {
		return q, err
	}

	if q.SortBy, err = entity.ParseSortKey(values.Get("sort_by")); err != nil {
		return q, invalid("sort_by", err)
	}
	if q.SortOrder, err = entity.ParseSortOrder(values.Get("sort_order")); err != nil {
		return q, invalid("sort_order", err)
	}

	return q, nil
}

func intList(values url.Values, param string) ([]int, error) {
	raw := values.Get(param)
	if raw == "" {
		return nil, nil
	}
	list, err := utils.ParseIntList(raw)
	if err != nil {
		return nil, invalid(param, err)
	}
	return list, nil
}

func optionalInt(values url.Values, param string) (*int, error) {
	raw := values.Get(param)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &ValidationError{Param: param, Reason: fmt.Sprintf("%q is not an integer", raw)}
	}
	return &n, nil
}

func optionalFloat(values url.Values, param string) (*float64, error) {
	raw := values.Get(param)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, &ValidationError{Param: param, Reason: fmt.Sprintf("%q is not a number", raw)}
	}
	return &f, nil
}

func timeRange(values url.Values, startParam, endParam string) (entity.TimeRange, error) {
	var r entity.TimeRange
	for _, bound := range []struct {
		param string
		dst   **int
	}{
		{startParam, &r.Start},
		{endParam, &r.End},
	} {
		raw := values.Get(bound.param)
		if raw == "" {
			continue
		}
		minute, err := utils.ParseMinuteOfDay(raw)
		if err != nil {
			return r, invalid(bound.param, err)
		}
		*bound.dst = &minute
	}
	return r, nil
}
