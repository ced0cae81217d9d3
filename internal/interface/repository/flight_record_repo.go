package repository

import (
	"context"
	"fmt"

	"flight-query-service/internal/domain/entity"
	"flight-query-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoFlightRecordRepository implements FlightRecordRepository on a MongoDB collection
type MongoFlightRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRecordRepository creates a new flight record repository
func NewMongoFlightRecordRepository(db *mongo.Database, collectionName string) *MongoFlightRecordRepository {
	return &MongoFlightRecordRepository{
		collection: db.Collection(collectionName),
	}
}

var _ repository.FlightRecordRepository = (*MongoFlightRecordRepository)(nil)

// EnsureIndexes creates single-field indexes on the equality fields searched most often
func (r *MongoFlightRecordRepository) EnsureIndexes(ctx context.Context) error {
	models := make([]mongo.IndexModel, 0, 5)
	for _, field := range []string{"from_location", "to_location", "departure_date", "number", "class"} {
		models = append(models, mongo.IndexModel{
			Keys: bson.D{{Key: field, Value: 1}},
		})
	}

	_, err := r.collection.Indexes().CreateMany(ctx, models)
	return err
}

// BuildFilter translates the store-side predicates into a MongoDB query document.
// An empty document selects the whole collection.
func BuildFilter(f repository.FlightFilter) bson.D {
	filter := bson.D{}

	if len(f.AvailableSeats) > 0 {
		filter = append(filter, bson.E{Key: "available_seats", Value: bson.M{"$in": f.AvailableSeats}})
	}
	if len(f.BookedSeats) > 0 {
		filter = append(filter, bson.E{Key: "booked_seats", Value: bson.M{"$in": f.BookedSeats}})
	}

	strEq := []struct {
		key   string
		value string
	}{
		{"class", f.Class},
		{"created_at", f.CreatedAt},
		{"departure_date", f.DepartureDate},
		{"from_location", f.FromLocation},
		{"number", f.Number},
		{"return_date", f.ReturnDate},
		{"return_time", f.ReturnTime},
		{"to_location", f.ToLocation},
	}
	for _, eq := range strEq {
		if eq.value != "" {
			filter = append(filter, bson.E{Key: eq.key, Value: eq.value})
		}
	}

	if f.Price != nil {
		filter = append(filter, bson.E{Key: "price", Value: *f.Price})
	}
	if f.SeatAvailable != nil {
		filter = append(filter, bson.E{Key: "seat_available", Value: *f.SeatAvailable})
	}
	if f.SeatMax != nil {
		filter = append(filter, bson.E{Key: "seat_max", Value: *f.SeatMax})
	}

	return filter
}

// Find fetches all records matching the filter
func (r *MongoFlightRecordRepository) Find(ctx context.Context, f repository.FlightFilter) ([]*entity.FlightRecord, error) {
	cursor, err := r.collection.Find(ctx, BuildFilter(f))
	if err != nil {
		return nil, fmt.Errorf("find flights: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*entity.FlightRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode flights: %w", err)
	}

	return records, nil
}

// InsertMany stores records, letting the server assign ids
func (r *MongoFlightRecordRepository) InsertMany(ctx context.Context, records []*entity.FlightRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(records))
	for _, record := range records {
		docs = append(docs, record)
	}

	result, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		inserted := 0
		if result != nil {
			inserted = len(result.InsertedIDs)
		}
		return inserted, fmt.Errorf("insert flights: %w", err)
	}

	return len(result.InsertedIDs), nil
}

// DeleteAll empties the collection
func (r *MongoFlightRecordRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("delete flights: %w", err)
	}
	return result.DeletedCount, nil
}

// Ping checks the primary is reachable
func (r *MongoFlightRecordRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, readpref.Primary())
}
