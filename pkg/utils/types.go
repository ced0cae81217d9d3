package utils

// Layouts used by stored flight records
const (
	DATE_LAYOUT       = "2006-01-02"
	TIME_LAYOUT       = "15:04"
	CREATED_AT_LAYOUT = "2006-01-02 15:04:05"

	MinutesPerDay = 24 * 60
)
