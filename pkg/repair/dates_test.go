package repair_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodeworks/refinery/pkg/repair"
)

func TestPackedDate(t *testing.T) {
	tests := []struct {
		name   string
		packed *int
		want   *time.Time
	}{
		{"null input", nil, nil},
		{"valid date", iptr(20240315), timePtr(2024, 3, 15)},
		{"leap day", iptr(20240229), timePtr(2024, 2, 29)},
		{"invalid calendar date at length 8", iptr(20240230), nil},
		{"month out of range", iptr(20241301), nil},
		{"zero", iptr(0), nil},
		{"seven digits", iptr(2024031), nil},
		{"nine digits", iptr(202403150), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repair.PackedDate(tt.packed)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(*tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func timePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
