package pipeline

import (
	"sort"
	"strconv"
	"time"

	"github.com/lodeworks/refinery/pkg/cleanse"
	"github.com/lodeworks/refinery/pkg/survivor"
	"github.com/lodeworks/refinery/pkg/tables"
)

// Customers reconciles a raw customer-profile batch: one survivor per
// customer id (latest creation date wins), codes normalized, names scrubbed.
func Customers(raw []tables.RawCustomer, now time.Time) []tables.Customer {
	survivors := survivor.Latest(raw,
		func(c tables.RawCustomer) (string, bool) {
			if c.ID == nil {
				return "", false
			}
			return strconv.Itoa(*c.ID), true
		},
		func(c tables.RawCustomer) time.Time {
			if c.CreatedAt == nil {
				return time.Time{}
			}
			return *c.CreatedAt
		},
	)

	out := make([]tables.Customer, 0, len(survivors))
	for _, c := range survivors {
		out = append(out, tables.Customer{
			ID:            *c.ID,
			Key:           cleanse.Scrub(c.Key),
			FirstName:     cleanse.Scrub(c.FirstName),
			LastName:      cleanse.Scrub(c.LastName),
			MaritalStatus: cleanse.MaritalStatus(c.MaritalStatus),
			Gender:        cleanse.Gender(c.Gender),
			CreatedAt:     c.CreatedAt,
			LoadedAt:      now,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
