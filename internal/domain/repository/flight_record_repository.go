package repository

import (
	"context"

	"flight-query-service/internal/domain/entity"
)

// FlightFilter holds the predicates a store evaluates itself.
// All set fields are ANDed; list fields match when the stored array contains any value.
type FlightFilter struct {
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
}

// FilterFromQuery extracts the store-side predicates of a query
func FilterFromQuery(q entity.FlightQuery) FlightFilter {
	return FlightFilter{
		AvailableSeats: q.AvailableSeats,
		BookedSeats:    q.BookedSeats,
		Class:          q.Class,
		CreatedAt:      q.CreatedAt,
		DepartureDate:  q.DepartureDate,
		FromLocation:   q.FromLocation,
		Number:         q.Number,
		Price:          q.Price,
		ReturnDate:     q.ReturnDate,
		ReturnTime:     q.ReturnTime,
		SeatAvailable:  q.SeatAvailable,
		SeatMax:        q.SeatMax,
		ToLocation:     q.ToLocation,
	}
}

// FlightRecordRepository defines the interface for flight record storage
type FlightRecordRepository interface {
	// Find returns every record matching filter as one snapshot
	Find(ctx context.Context, filter FlightFilter) ([]*entity.FlightRecord, error)
	InsertMany(ctx context.Context, records []*entity.FlightRecord) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}
