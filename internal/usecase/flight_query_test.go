package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/internal/domain/repository"
	"flight-query-service/pkg/logger"
	"flight-query-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFlightRepo struct {
	records    []*entity.FlightRecord
	err        error
	lastFilter repository.FlightFilter
	deadline   bool
	inserted   []*entity.FlightRecord
	deleted    bool
}

func (f *fakeFlightRepo) Find(ctx context.Context, filter repository.FlightFilter) ([]*entity.FlightRecord, error) {
	f.lastFilter = filter
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*entity.FlightRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeFlightRepo) InsertMany(_ context.Context, records []*entity.FlightRecord) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.inserted = append(f.inserted, records...)
	return len(records), nil
}

func (f *fakeFlightRepo) DeleteAll(context.Context) (int64, error) {
	f.deleted = true
	return int64(len(f.inserted)), nil
}

func (f *fakeFlightRepo) Ping(context.Context) error { return f.err }

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func sampleFlights() []*entity.FlightRecord {
	return []*entity.FlightRecord{
		{Number: "A1", Price: 100, DepartureTime: "08:00", ArrivalTime: "10:00", Facilities: []string{"wifi"}},
		{Number: "A2", Price: 200, DepartureTime: "09:00", ArrivalTime: "11:00", Facilities: []string{"wifi", "meal"}},
	}
}

func numbers(flights []*entity.FlightRecord) []string {
	out := make([]string, 0, len(flights))
	for _, f := range flights {
		out = append(out, f.Number)
	}
	return out
}

func newService(repo repository.FlightRecordRepository) (*FlightQueryService, *metrics.Metrics) {
	m := metrics.NewMetrics("test", prometheus.NewRegistry())
	return NewFlightQueryService(repo, m, logger.NewNopLogger(), time.Second), m
}

func TestSearch_NoParamsReturnsEverything(t *testing.T) {
	repo := &fakeFlightRepo{records: sampleFlights()}
	svc, m := newService(repo)

	flights, err := svc.Search(context.Background(), entity.FlightQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, numbers(flights))
	assert.Equal(t, repository.FlightFilter{}, repo.lastFilter)
	assert.True(t, repo.deadline)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues(metrics.OutcomeFound)))
}

func TestSearch_EmptyStore(t *testing.T) {
	svc, m := newService(&fakeFlightRepo{})

	_, err := svc.Search(context.Background(), entity.FlightQuery{})
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues(metrics.OutcomeStoreEmpty)))
}

func TestSearch_AllFilteredOut(t *testing.T) {
	svc, m := newService(&fakeFlightRepo{records: sampleFlights()})

	_, err := svc.Search(context.Background(), entity.FlightQuery{MinPrice: floatPtr(1000)})
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QueriesTotal.WithLabelValues(metrics.OutcomeFilteredOut)))
}

func TestSearch_StoreFailure(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc, m := newService(&fakeFlightRepo{err: storeErr})

	_, err := svc.Search(context.Background(), entity.FlightQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsCount.WithLabelValues("find_flights")))
}

func TestSearch_PushesDownStoreFilters(t *testing.T) {
	repo := &fakeFlightRepo{records: sampleFlights()}
	svc, _ := newService(repo)

	_, err := svc.Search(context.Background(), entity.FlightQuery{
		AvailableSeats: []int{3, 4},
		Class:          "Business",
		FromLocation:   "Paris",
		SeatMax:        intPtr(24),
		Facilities:     []string{"wifi"},
		MinPrice:       floatPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, repository.FlightFilter{
		AvailableSeats: []int{3, 4},
		Class:          "Business",
		FromLocation:   "Paris",
		SeatMax:        intPtr(24),
	}, repo.lastFilter)
}

func TestSearch_FacilitiesAndMinPrice(t *testing.T) {
	svc, _ := newService(&fakeFlightRepo{records: sampleFlights()})

	flights, err := svc.Search(context.Background(), entity.FlightQuery{
		Facilities: []string{"wifi", "meal"},
		MinPrice:   floatPtr(150),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A2"}, numbers(flights))
}

func TestSearch_DepartureWindow(t *testing.T) {
	svc, _ := newService(&fakeFlightRepo{records: sampleFlights()})

	flights, err := svc.Search(context.Background(), entity.FlightQuery{
		DepartureTime: entity.TimeRange{Start: intPtr(8*60 + 30), End: intPtr(9*60 + 30)},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A2"}, numbers(flights))
}

func TestSearch_SortByPriceDesc(t *testing.T) {
	svc, _ := newService(&fakeFlightRepo{records: sampleFlights()})

	flights, err := svc.Search(context.Background(), entity.FlightQuery{SortBy: entity.SortByPrice, SortOrder: entity.SortDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"A2", "A1"}, numbers(flights))
}

func TestMatches_Facilities(t *testing.T) {
	flight := &entity.FlightRecord{Facilities: []string{"Air Conditioning", "Food", "WiFi"}}

	assert.True(t, Matches(flight, entity.FlightQuery{}))
	assert.True(t, Matches(flight, entity.FlightQuery{Facilities: []string{"WiFi"}}))
	assert.True(t, Matches(flight, entity.FlightQuery{Facilities: []string{"WiFi", "Food", "WiFi"}}))
	assert.False(t, Matches(flight, entity.FlightQuery{Facilities: []string{"WiFi", "Coffee"}}))
	assert.False(t, Matches(flight, entity.FlightQuery{Facilities: []string{"wifi"}}))

	bare := &entity.FlightRecord{}
	assert.True(t, Matches(bare, entity.FlightQuery{}))
	assert.False(t, Matches(bare, entity.FlightQuery{Facilities: []string{"Food"}}))
}

func TestMatches_PriceBoundsAreInclusive(t *testing.T) {
	flight := &entity.FlightRecord{Price: 150}

	assert.True(t, Matches(flight, entity.FlightQuery{MinPrice: floatPtr(150)}))
	assert.True(t, Matches(flight, entity.FlightQuery{MaxPrice: floatPtr(150)}))
	assert.True(t, Matches(flight, entity.FlightQuery{MinPrice: floatPtr(150), MaxPrice: floatPtr(150)}))
	assert.False(t, Matches(flight, entity.FlightQuery{MinPrice: floatPtr(150.01)}))
	assert.False(t, Matches(flight, entity.FlightQuery{MaxPrice: floatPtr(149.99)}))
}

func TestMatches_TimeRanges(t *testing.T) {
	flight := &entity.FlightRecord{DepartureTime: "08:30", ArrivalTime: "14:45"}

	tests := []struct {
		name string
		q    entity.FlightQuery
		want bool
	}{
		{"no bounds", entity.FlightQuery{}, true},
		{"start equals", entity.FlightQuery{DepartureTime: entity.TimeRange{Start: intPtr(510)}}, true},
		{"end equals", entity.FlightQuery{DepartureTime: entity.TimeRange{End: intPtr(510)}}, true},
		{"after end", entity.FlightQuery{DepartureTime: entity.TimeRange{End: intPtr(509)}}, false},
		{"before start", entity.FlightQuery{DepartureTime: entity.TimeRange{Start: intPtr(511)}}, false},
		{"arrival inside", entity.FlightQuery{ArrivalTime: entity.TimeRange{Start: intPtr(14 * 60), End: intPtr(15 * 60)}}, true},
		{"arrival outside", entity.FlightQuery{ArrivalTime: entity.TimeRange{Start: intPtr(15 * 60)}}, false},
		{"both fields", entity.FlightQuery{
			DepartureTime: entity.TimeRange{Start: intPtr(8 * 60)},
			ArrivalTime:   entity.TimeRange{End: intPtr(14 * 60)},
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(flight, tt.q))
		})
	}
}

func TestMatches_UnparsableStoredTime(t *testing.T) {
	flight := &entity.FlightRecord{DepartureTime: "soon"}

	assert.True(t, Matches(flight, entity.FlightQuery{}))
	assert.False(t, Matches(flight, entity.FlightQuery{ArrivalTime: entity.TimeRange{Start: intPtr(0)}}))
	assert.False(t, Matches(flight, entity.FlightQuery{DepartureTime: entity.TimeRange{Start: intPtr(0)}}))
}

func TestSortFlights_StableByPrice(t *testing.T) {
	flights := []*entity.FlightRecord{
		{Number: "a", Price: 200},
		{Number: "b", Price: 100},
		{Number: "c", Price: 200},
		{Number: "d", Price: 100},
	}

	asc := append([]*entity.FlightRecord(nil), flights...)
	SortFlights(asc, entity.SortByPrice, entity.SortAsc)
	assert.Equal(t, []string{"b", "d", "a", "c"}, numbers(asc))

	desc := append([]*entity.FlightRecord(nil), flights...)
	SortFlights(desc, entity.SortByPrice, entity.SortDesc)
	assert.Equal(t, []string{"a", "c", "b", "d"}, numbers(desc))
}

func TestSortFlights_ByClockTime(t *testing.T) {
	flights := []*entity.FlightRecord{
		{Number: "late", DepartureTime: "23:10", ArrivalTime: "04:00"},
		{Number: "broken", DepartureTime: "", ArrivalTime: ""},
		{Number: "early", DepartureTime: "6:05", ArrivalTime: "12:00"},
		{Number: "noon", DepartureTime: "12:00", ArrivalTime: "17:30"},
	}

	SortFlights(flights, entity.SortByDeparture, entity.SortAsc)
	assert.Equal(t, []string{"early", "noon", "late", "broken"}, numbers(flights))

	SortFlights(flights, entity.SortByDeparture, entity.SortDesc)
	assert.Equal(t, []string{"late", "noon", "early", "broken"}, numbers(flights))

	SortFlights(flights, entity.SortByArrival, entity.SortAsc)
	assert.Equal(t, []string{"late", "early", "noon", "broken"}, numbers(flights))
}

func TestSortFlights_NoKeyKeepsOrder(t *testing.T) {
	flights := []*entity.FlightRecord{{Number: "b", Price: 2}, {Number: "a", Price: 1}}
	SortFlights(flights, entity.SortNone, entity.SortDesc)
	assert.Equal(t, []string{"b", "a"}, numbers(flights))
}
