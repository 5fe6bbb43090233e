package pipeline

import (
	"sort"
	"strconv"
	"time"

	"github.com/lodeworks/refinery/pkg/cleanse"
	"github.com/lodeworks/refinery/pkg/intervals"
	"github.com/lodeworks/refinery/pkg/repair"
	"github.com/lodeworks/refinery/pkg/survivor"
	"github.com/lodeworks/refinery/pkg/tables"
)

// Products reconciles a raw product batch. Products are versioned: the batch
// collapses to one record per version id, the surviving version set of each
// product key is closed into contiguous validity intervals, and only then is
// each row normalized and its key decomposed.
func Products(raw []tables.RawProduct, now time.Time) []tables.Product {
	// One survivor per version id; duplicates keep the latest start date.
	versions := survivor.Latest(raw,
		func(p tables.RawProduct) (string, bool) {
			if p.ID == nil {
				return "", false
			}
			return strconv.Itoa(*p.ID), true
		},
		func(p tables.RawProduct) time.Time {
			if p.Start == nil {
				return time.Time{}
			}
			return *p.Start
		},
	)

	versions = intervals.Derive(versions)

	out := make([]tables.Product, 0, len(versions))
	for _, v := range versions {
		categoryID, suffix := repair.SplitProductKey(cleanse.Scrub(v.Key))
		out = append(out, tables.Product{
			ID:         *v.ID,
			CategoryID: categoryID,
			Key:        suffix,
			Name:       cleanse.Scrub(v.Name),
			Cost:       repair.Cost(v.Cost),
			Line:       cleanse.ProductLine(v.Line),
			Start:      v.Start,
			End:        v.End,
			LoadedAt:   now,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CategoryID != out[j].CategoryID {
			return out[i].CategoryID < out[j].CategoryID
		}
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		si, sj := dateOrZero(out[i].Start), dateOrZero(out[j].Start)
		if !si.Equal(sj) {
			return si.Before(sj)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func dateOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
