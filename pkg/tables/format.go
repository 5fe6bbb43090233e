package tables

import (
	"strconv"
	"time"
)

// DateFormat is the wire format for calendar dates in silver output.
const DateFormat = "2006-01-02"

// formatDate renders a nullable date, empty when null.
func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

// formatTime renders an audit timestamp.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// formatFloat renders a numeric value without exponent notation.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}
