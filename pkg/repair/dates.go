package repair

import (
	"strconv"
	"time"
)

// packedDateLayout matches the YYYYMMDD packed-integer date encoding.
const packedDateLayout = "20060102"

// PackedDate converts a date stored as an 8-digit integer. The conversion
// applies only when the value's decimal-digit length is exactly 8; any other
// length, or an 8-digit value that is not a real calendar date, yields a null
// date. Records are never dropped for a date-parse failure.
func PackedDate(packed *int) *time.Time {
	if packed == nil {
		return nil
	}
	s := strconv.Itoa(*packed)
	if len(s) != 8 {
		return nil
	}
	t, err := time.ParseInLocation(packedDateLayout, s, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}
