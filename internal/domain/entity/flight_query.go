package entity

import "fmt"

// SortKey selects the field results are ordered by
type SortKey string

const (
	SortNone        SortKey = ""
	SortByPrice     SortKey = "price"
	SortByDeparture SortKey = "departureTime"
	SortByArrival   SortKey = "arrivalTime"
)

// SortOrder is the direction of a sort
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortKey validates a sort_by value
func ParseSortKey(value string) (SortKey, error) {
	switch key := SortKey(value); key {
	case SortNone, SortByPrice, SortByDeparture, SortByArrival:
		return key, nil
	}
	return SortNone, fmt.Errorf("unsupported sort key %q", value)
}

// ParseSortOrder validates a sort_order value. Empty means ascending.
func ParseSortOrder(value string) (SortOrder, error) {
	switch order := SortOrder(value); order {
	case "":
		return SortAsc, nil
	case SortAsc, SortDesc:
		return order, nil
	}
	return SortAsc, fmt.Errorf("unsupported sort order %q", value)
}

// TimeRange bounds a clock time in minutes since midnight. Nil bounds are open.
type TimeRange struct {
	Start *int
	End   *int
}

// IsSet reports whether any bound is present
func (r TimeRange) IsSet() bool {
	return r.Start != nil || r.End != nil
}

// Contains checks minute against both bounds, inclusive
func (r TimeRange) Contains(minute int) bool {
	if r.Start != nil && minute < *r.Start {
		return false
	}
	if r.End != nil && minute > *r.End {
		return false
	}
	return true
}

// FlightQuery is the parsed set of filters and sort options for one flight search.
// Zero values (empty string, nil pointer, empty slice) mean "no constraint".
type FlightQuery struct {
	// Pushed down to the store
	AvailableSeats []int
	BookedSeats    []int
	Class          string
	CreatedAt      string
	DepartureDate  string
	FromLocation   string
	Number         string
	Price          *float64
	ReturnDate     string
	ReturnTime     string
	SeatAvailable  *int
	SeatMax        *int
	ToLocation     string

	// Evaluated in process
	Facilities    []string
	MinPrice      *float64
	MaxPrice      *float64
	DepartureTime TimeRange
	ArrivalTime   TimeRange

	SortBy    SortKey
	SortOrder SortOrder
}
