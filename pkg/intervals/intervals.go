// Package intervals derives temporal validity intervals for versioned
// records. Products are the only versioned entity: every raw row is one
// version of a product, versions share a product key, and each version's end
// date is implied by the start date of the chronologically next version.
package intervals

import (
	"sort"
	"time"

	"github.com/lodeworks/refinery/pkg/tables"
)

// Derive computes the validity end date for every product version: one day
// before the start date of the next version with the same product key. The
// most recent version of each key keeps its raw end date, including null,
// which means the version is currently active.
//
// This is a windowed computation over the full ordered version list of a key,
// so it runs on the post-deduplication version set, not pairwise. The result
// is sorted by product key, then start date.
func Derive(versions []tables.RawProduct) []tables.RawProduct {
	groups := make(map[string][]tables.RawProduct)
	keys := make([]string, 0)

	for _, v := range versions {
		if _, seen := groups[v.Key]; !seen {
			keys = append(keys, v.Key)
		}
		groups[v.Key] = append(groups[v.Key], v)
	}
	sort.Strings(keys)

	out := make([]tables.RawProduct, 0, len(versions))
	for _, key := range keys {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool {
			return startOf(group[i]).Before(startOf(group[j]))
		})

		// Forward scan: each version closes at the day before its successor
		// opens. The final version keeps whatever the raw extract said.
		for i := range group {
			if i+1 < len(group) && group[i+1].Start != nil {
				end := group[i+1].Start.AddDate(0, 0, -1)
				group[i].End = &end
			}
			out = append(out, group[i])
		}
	}
	return out
}

// startOf treats a null start date as the zero time so undated versions sort
// before dated ones.
func startOf(v tables.RawProduct) time.Time {
	if v.Start == nil {
		return time.Time{}
	}
	return *v.Start
}
