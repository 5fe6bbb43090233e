package pipeline

import (
	"sort"
	"time"

	"github.com/lodeworks/refinery/pkg/cleanse"
	"github.com/lodeworks/refinery/pkg/repair"
	"github.com/lodeworks/refinery/pkg/survivor"
	"github.com/lodeworks/refinery/pkg/tables"
)

// Demographics reconciles a raw customer-demographic batch. Keys are
// de-tagged before they are used for matching, so a tagged and an untagged
// row for the same customer collapse to one survivor (latest birth date
// wins). Future birth dates are nulled, not rejected.
func Demographics(raw []tables.RawDemographic, now time.Time) []tables.Demographic {
	survivors := survivor.Latest(raw,
		func(d tables.RawDemographic) (string, bool) {
			id := cleanse.DemographicID(d.ID)
			return id, id != ""
		},
		func(d tables.RawDemographic) time.Time {
			return dateOrZero(d.BirthDate)
		},
	)

	out := make([]tables.Demographic, 0, len(survivors))
	for _, d := range survivors {
		out = append(out, tables.Demographic{
			ID:        cleanse.DemographicID(d.ID),
			BirthDate: repair.BirthDate(d.BirthDate, now),
			Gender:    cleanse.Gender(d.Gender),
			LoadedAt:  now,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
