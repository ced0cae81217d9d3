package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/internal/domain/repository"
	"flight-query-service/pkg/logger"
	"flight-query-service/pkg/utils"
)

const (
	seatMax          = 24
	minSeatAvailable = 15
	flightNumberLen  = 8
	flightNumberSet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// attempts per flight before the generator gives up on finding a unique combination
	maxAttempts = 1000
)

var (
	seedLocations   = []string{"New York", "London", "Paris", "Tokyo", "Sydney"}
	seedClasses     = []string{"Economy", "Business"}
	baseFacilities  = []string{"Air Conditioning", "Food"}
	extraFacilities = map[string][]string{
		"Economy":  {"WiFi"},
		"Business": {"WiFi", "Coffee"},
	}
	classPrices = map[string][]float64{
		"Economy":  {50, 100, 150, 200, 250},
		"Business": {200, 250, 300, 350, 400},
	}
)

// FlightSeeder fills the flight collection with random but internally consistent records
type FlightSeeder struct {
	flightRecordRepo repository.FlightRecordRepository
	logger           logger.Logger
	rng              *rand.Rand
	now              func() time.Time
}

// NewFlightSeeder creates a seeder drawing from rng
func NewFlightSeeder(flightRecordRepo repository.FlightRecordRepository, logger logger.Logger, rng *rand.Rand) *FlightSeeder {
	return &FlightSeeder{
		flightRecordRepo: flightRecordRepo,
		logger:           logger,
		rng:              rng,
		now:              time.Now,
	}
}

// Seed generates count flights and stores them, optionally clearing the collection first
func (s *FlightSeeder) Seed(ctx context.Context, count int, drop bool) (int, error) {
	if drop {
		deleted, err := s.flightRecordRepo.DeleteAll(ctx)
		if err != nil {
			return 0, err
		}
		s.logger.Info("Cleared flight collection", "deleted", deleted)
	}

	flights, err := s.Generate(count)
	if err != nil {
		return 0, err
	}

	inserted, err := s.flightRecordRepo.InsertMany(ctx, flights)
	if err != nil {
		return inserted, err
	}
	s.logger.Info("Seeded flights", "inserted", inserted)
	return inserted, nil
}

// Generate builds count distinct flights without touching the store
func (s *FlightSeeder) Generate(count int) ([]*entity.FlightRecord, error) {
	if count < 0 {
		return nil, fmt.Errorf("flight count must not be negative, got %d", count)
	}

	flights := make([]*entity.FlightRecord, 0, count)
	numbers := make(map[string]struct{}, count)
	seen := make(map[string]struct{}, count)

	for i := 0; i < count; i++ {
		var flight *entity.FlightRecord
		for attempt := 0; ; attempt++ {
			if attempt == maxAttempts {
				return flights, fmt.Errorf("could not generate a unique flight after %d attempts (generated %d)", maxAttempts, len(flights))
			}
			candidate := s.randomFlight()
			key := duplicateKey(candidate)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			flight = candidate
			break
		}

		flight.Number = s.uniqueFlightNumber(numbers)
		flights = append(flights, flight)
	}

	return flights, nil
}

func (s *FlightSeeder) randomFlight() *entity.FlightRecord {
	now := s.now()

	from := seedLocations[s.rng.IntN(len(seedLocations))]
	destinations := make([]string, 0, len(seedLocations)-1)
	for _, loc := range seedLocations {
		if loc != from {
			destinations = append(destinations, loc)
		}
	}
	to := destinations[s.rng.IntN(len(destinations))]

	departureDate := now.AddDate(0, 0, 1+s.rng.IntN(365))
	departure := s.rng.IntN(utils.MinutesPerDay)
	duration := (5+s.rng.IntN(6))*60 + s.rng.IntN(60)

	class := seedClasses[s.rng.IntN(len(seedClasses))]
	prices := classPrices[class]
	facilities := slices.Concat(baseFacilities, extraFacilities[class])

	seatAvailable := minSeatAvailable + s.rng.IntN(seatMax-minSeatAvailable+1)
	order := s.rng.Perm(seatMax)
	booked := make([]int, 0, seatMax-seatAvailable)
	for _, idx := range order[:seatMax-seatAvailable] {
		booked = append(booked, idx+1)
	}
	available := make([]int, 0, seatAvailable)
	for seat := 1; seat <= seatMax; seat++ {
		if !slices.Contains(booked, seat) {
			available = append(available, seat)
		}
	}

	flight := &entity.FlightRecord{
		Class:          class,
		FromLocation:   from,
		ToLocation:     to,
		DepartureDate:  departureDate.Format(utils.DATE_LAYOUT),
		DepartureTime:  utils.FormatMinuteOfDay(departure),
		ArrivalTime:    utils.FormatMinuteOfDay(departure + duration),
		Price:          prices[s.rng.IntN(len(prices))],
		SeatMax:        seatMax,
		SeatAvailable:  seatAvailable,
		AvailableSeats: available,
		BookedSeats:    booked,
		Facilities:     facilities,
		CreatedAt:      now.Format(utils.CREATED_AT_LAYOUT),
	}

	if s.rng.IntN(2) == 0 {
		returnDate := departureDate.AddDate(0, 0, 2+s.rng.IntN(6)).Format(utils.DATE_LAYOUT)
		returnTime := utils.FormatMinuteOfDay(s.rng.IntN(utils.MinutesPerDay))
		flight.ReturnDate = &returnDate
		flight.ReturnTime = &returnTime
	}

	return flight
}

func (s *FlightSeeder) uniqueFlightNumber(existing map[string]struct{}) string {
	for {
		var b strings.Builder
		for i := 0; i < flightNumberLen; i++ {
			b.WriteByte(flightNumberSet[s.rng.IntN(len(flightNumberSet))])
		}
		number := b.String()
		if _, taken := existing[number]; !taken {
			existing[number] = struct{}{}
			return number
		}
	}
}

func duplicateKey(f *entity.FlightRecord) string {
	return strings.Join([]string{
		f.DepartureDate,
		f.DepartureTime,
		f.FromLocation,
		f.ToLocation,
		f.Class,
		strings.Join(f.Facilities, "|"),
	}, "\x00")
}
