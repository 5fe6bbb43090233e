// Package survivor implements survivorship selection: collapsing a raw batch
// to exactly one record per natural key. Records with a null key are dropped
// silently; a missing key cannot be reconciled, so this is a designed filter,
// not a fault.
//
// Selection is deterministic. Survivors are returned in first-seen key order,
// and ties on the ordering field keep the earlier input record, so re-running
// over the same batch always yields the same survivors.
package survivor

import "time"

// KeyFunc extracts a record's natural key. ok is false when the key is null,
// which drops the record.
type KeyFunc[T any] func(T) (key string, ok bool)

// TimeFunc extracts a record's ordering field. A null ordering value is
// reported as the zero time, which loses to any real timestamp.
type TimeFunc[T any] func(T) time.Time

// Latest returns one survivor per distinct non-null key: the record with the
// most recent ordering field. When two records for a key carry the same
// ordering value, the one seen first in the input wins.
func Latest[T any](rows []T, key KeyFunc[T], orderedAt TimeFunc[T]) []T {
	type slot struct {
		index int
		at    time.Time
	}

	chosen := make(map[string]slot)
	order := make([]string, 0, len(rows))

	for i, row := range rows {
		k, ok := key(row)
		if !ok {
			continue
		}
		at := orderedAt(row)
		current, seen := chosen[k]
		if !seen {
			chosen[k] = slot{index: i, at: at}
			order = append(order, k)
			continue
		}
		if at.After(current.at) {
			chosen[k] = slot{index: i, at: at}
		}
	}

	out := make([]T, 0, len(order))
	for _, k := range order {
		out = append(out, rows[chosen[k].index])
	}
	return out
}

// First returns one survivor per distinct non-null key: the record seen first
// in the input. Used for entities without a temporal ordering field, where
// any one survivor is acceptable but selection must stay deterministic.
func First[T any](rows []T, key KeyFunc[T]) []T {
	seen := make(map[string]struct{})
	out := make([]T, 0, len(rows))

	for _, row := range rows {
		k, ok := key(row)
		if !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, row)
	}
	return out
}
