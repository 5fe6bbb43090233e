// Package repair implements the value repair rules: pure functions that
// derive or correct numeric and date fields from sibling fields on the same
// record. No rule here drops a record or returns an error; unrepairable
// values resolve to a null date or a zero default.
package repair

import (
	"math"
	"strings"
	"time"
)

// Sales reconciles a sales line's amount, quantity and unit price. The three
// quantities must satisfy amount = quantity x price; typically exactly one of
// them is corrupted in the raw feed, so the other two are used to repair it.
//
// Rules, applied in order:
//
//  1. Amount null or <= 0: recompute as quantity x |price| when both are
//     present, else 0. The absolute price is used so a negative raw price
//     cannot leak its sign into the recomputed amount; rule 3 corrects the
//     price itself the same way.
//  2. Quantity null or negative: set to 0.
//  3. Price null or exactly 0: recompute as amount / quantity when quantity
//     is present and non-zero and amount is present, else 0. A present but
//     negative price is sign-corrected instead; the two price rules never
//     both apply.
//
// Values that are already present and mutually consistent are left untouched;
// the rules repair, they never override.
func Sales(amount *float64, quantity *int, price *float64) (float64, int, float64) {
	var outAmount float64
	if amount == nil || *amount <= 0 {
		if quantity != nil && price != nil {
			outAmount = float64(*quantity) * math.Abs(*price)
		}
	} else {
		outAmount = *amount
	}

	var outQuantity int
	if quantity != nil && *quantity >= 0 {
		outQuantity = *quantity
	}

	var outPrice float64
	switch {
	case price == nil || *price == 0:
		if amount != nil && quantity != nil && *quantity != 0 {
			outPrice = *amount / float64(*quantity)
		}
	case *price < 0:
		outPrice = math.Abs(*price)
	default:
		outPrice = *price
	}

	return outAmount, outQuantity, outPrice
}

// Product key layout: a fixed-width category prefix, a separator, then the
// clean product suffix.
const (
	categoryPrefixLen = 5
	keySuffixOffset   = 6
)

// SplitProductKey decomposes a raw product key into its category code and
// clean suffix. The category code is the first five characters with hyphens
// rewritten to underscores; the suffix is everything after the fixed offset.
// Keys too short for a segment yield an empty string for it; this is a
// structural rule, not a conditional one.
func SplitProductKey(key string) (categoryID, suffix string) {
	if len(key) >= categoryPrefixLen {
		categoryID = strings.ReplaceAll(key[:categoryPrefixLen], "-", "_")
	} else {
		categoryID = strings.ReplaceAll(key, "-", "_")
	}
	if len(key) > keySuffixOffset {
		suffix = key[keySuffixOffset:]
	}
	return categoryID, suffix
}

// Cost applies the numeric default: a null cost is 0.
func Cost(cost *float64) float64 {
	if cost == nil {
		return 0
	}
	return *cost
}

// BirthDate nulls a birth date strictly in the future. The record itself is
// never rejected for an invalid birth date.
func BirthDate(birth *time.Time, now time.Time) *time.Time {
	if birth == nil || birth.After(now) {
		return nil
	}
	return birth
}
