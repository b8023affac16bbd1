package errors

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Accepted ranges for birth data.
const (
	MinYear = 1900
	MaxYear = 2100

	MaxLabelLength = 50

	MinPeople = 2
	MaxPeople = 4
)

// ValidateBirthData validates civil date, time and coordinates of a birth moment.
//
// The validation rules are:
//   - year in [1900, 2100], month in [1, 12]
//   - day in [1, 31] and valid for the given month
//   - hour in [0, 23], minute in [0, 59]
//   - latitude in [-90, 90], longitude in [-180, 180]
func ValidateBirthData(year, month, day, hour, minute int, lat, lon float64) error {
	if year < MinYear || year > MaxYear {
		return New(ErrCodeInvalidInput, "year %d out of range [%d, %d]", year, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return New(ErrCodeInvalidInput, "month %d out of range [1, 12]", month)
	}
	if day < 1 || day > 31 {
		return New(ErrCodeInvalidInput, "day %d out of range [1, 31]", day)
	}
	if last := daysIn(year, month); day > last {
		return New(ErrCodeInvalidInput, "day %d out of range for %s %d (max %d)", day, time.Month(month), year, last)
	}
	if hour < 0 || hour > 23 {
		return New(ErrCodeInvalidInput, "hour %d out of range [0, 23]", hour)
	}
	if minute < 0 || minute > 59 {
		return New(ErrCodeInvalidInput, "minute %d out of range [0, 59]", minute)
	}
	return ValidateCoordinates(lat, lon)
}

// ValidateCoordinates validates a latitude/longitude pair in degrees.
func ValidateCoordinates(lat, lon float64) error {
	// Written as negated ranges so NaN is rejected too.
	if !(lat >= -90 && lat <= 90) {
		return New(ErrCodeInvalidInput, "latitude %v out of range [-90, 90]", lat)
	}
	if !(lon >= -180 && lon <= 180) {
		return New(ErrCodeInvalidInput, "longitude %v out of range [-180, 180]", lon)
	}
	return nil
}

// ValidateLabel validates a display label for a person in a comparison.
// Labels must be 1 to 50 characters without control characters.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidInput, "label cannot be empty")
	}
	if n := utf8.RuneCountInString(label); n > MaxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (%d characters, max %d)", n, MaxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}
	return nil
}

// ValidatePeopleCount validates the number of people in a synastry comparison.
func ValidatePeopleCount(n int) error {
	if n < MinPeople || n > MaxPeople {
		return New(ErrCodeInvalidInput, "synastry needs %d to %d people, got %d", MinPeople, MaxPeople, n)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
