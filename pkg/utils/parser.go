package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMinuteOfDay converts an "HH:MM" clock time into hours*60+minutes.
// A single-digit hour ("8:05") is accepted; minutes must have two digits.
func ParseMinuteOfDay(value string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}

	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}

	return hours*60 + minutes, nil
}

// FormatMinuteOfDay is the inverse of ParseMinuteOfDay. Values outside a day wrap around.
func FormatMinuteOfDay(minute int) string {
	minute %= MinutesPerDay
	if minute < 0 {
		minute += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// SplitList splits a comma separated parameter, trimming blanks and dropping empty items
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// ParseIntList parses a comma separated list of integers
func ParseIntList(value string) ([]int, error) {
	items := SplitList(value)
	if len(items) == 0 {
		return nil, fmt.Errorf("empty list")
	}

	numbers := make([]int, 0, len(items))
	for _, item := range items {
		n, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", item)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}
