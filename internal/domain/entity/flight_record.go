// internal/domain/entity/flight_record.go
package entity

// FlightRecord is a flight document as stored in the flight collection.
// Field names follow the stored snake_case keys.
type FlightRecord struct {
	ID             string   `bson:"_id,omitempty" json:"id,omitempty"`
	Number         string   `bson:"number" json:"number"`
	Class          string   `bson:"class" json:"class"`
	FromLocation   string   `bson:"from_location" json:"from_location"`
	ToLocation     string   `bson:"to_location" json:"to_location"`
	DepartureDate  string   `bson:"departure_date" json:"departure_date"`
	DepartureTime  string   `bson:"departure_time" json:"departure_time"`
	ArrivalTime    string   `bson:"arrival_time" json:"arrival_time"`
	ReturnDate     *string  `bson:"return_date" json:"return_date"` // nil for one-way flights
	ReturnTime     *string  `bson:"return_time" json:"return_time"`
	Price          float64  `bson:"price" json:"price"`
	SeatMax        int      `bson:"seat_max" json:"seat_max"`
	SeatAvailable  int      `bson:"seat_available" json:"seat_available"`
	AvailableSeats []int    `bson:"available_seats" json:"available_seats"`
	BookedSeats    []int    `bson:"booked_seats" json:"booked_seats"`
	Facilities     []string `bson:"facilities" json:"facilities"`
	CreatedAt      string   `bson:"created_at" json:"created_at"`
}

// HasFacilities reports whether every required facility is offered.
// A record without facilities only satisfies an empty requirement.
func (f *FlightRecord) HasFacilities(required []string) bool {
	if len(required) == 0 {
		return true
	}
	if len(f.Facilities) == 0 {
		return false
	}

	offered := make(map[string]struct{}, len(f.Facilities))
	for _, facility := range f.Facilities {
		offered[facility] = struct{}{}
	}
	for _, facility := range required {
		if _, ok := offered[facility]; !ok {
			return false
		}
	}
	return true
}
