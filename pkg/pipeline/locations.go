package pipeline

import (
	"sort"
	"time"

	"github.com/lodeworks/refinery/pkg/cleanse"
	"github.com/lodeworks/refinery/pkg/survivor"
	"github.com/lodeworks/refinery/pkg/tables"
)

// Locations reconciles a raw customer-location batch. Locations carry no
// temporal ordering field, so duplicates keep the first record in input
// order.
func Locations(raw []tables.RawLocation, now time.Time) []tables.Location {
	survivors := survivor.First(raw,
		func(l tables.RawLocation) (string, bool) {
			id := cleanse.LocationID(l.ID)
			return id, id != ""
		},
	)

	out := make([]tables.Location, 0, len(survivors))
	for _, l := range survivors {
		out = append(out, tables.Location{
			ID:       cleanse.LocationID(l.ID),
			Country:  cleanse.Country(l.Country),
			LoadedAt: now,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
