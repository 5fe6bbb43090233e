package pipeline

import (
	"sort"
	"time"

	"github.com/lodeworks/refinery/pkg/cleanse"
	"github.com/lodeworks/refinery/pkg/survivor"
	"github.com/lodeworks/refinery/pkg/tables"
)

// Categories reconciles a raw product-category batch. Categories carry no
// temporal ordering field, so duplicates keep the first record in input
// order.
func Categories(raw []tables.RawCategory, now time.Time) []tables.Category {
	survivors := survivor.First(raw,
		func(c tables.RawCategory) (string, bool) {
			id := cleanse.Scrub(c.ID)
			return id, id != ""
		},
	)

	out := make([]tables.Category, 0, len(survivors))
	for _, c := range survivors {
		out = append(out, tables.Category{
			ID:          cleanse.Scrub(c.ID),
			Category:    cleanse.Scrub(c.Category),
			Subcategory: cleanse.Scrub(c.Subcategory),
			Maintenance: cleanse.Maintenance(c.Maintenance),
			LoadedAt:    now,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
