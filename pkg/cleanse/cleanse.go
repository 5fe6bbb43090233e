// Package cleanse implements the field normalizer: closed-world mappings from
// raw coded or free-text values to the canonical vocabularies in pkg/tables,
// plus the string scrubbing and key rewrites applied to every raw field.
//
// Nothing in this package fails. Unmapped or unexpected inputs resolve to the
// explicit Unknown (or Other) sentinel of their vocabulary; they are never
// passed through raw and never become null.
package cleanse

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lodeworks/refinery/pkg/tables"
)

// Scrub trims leading and trailing whitespace and removes embedded line-feed
// and carriage-return characters. Upstream extracts are known to carry
// embedded control characters that break exact-match comparisons, so every
// free-text field passes through here before classification or storage.
func Scrub(s string) string {
	if s == "" {
		return ""
	}
	s = strings.NewReplacer("\r", "", "\n", "").Replace(s)
	return strings.TrimSpace(s)
}

// fold prepares a coded value for comparison: all whitespace and control
// characters removed, upper-cased.
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// MaritalStatus maps a raw marital status code to the canonical vocabulary.
func MaritalStatus(raw string) tables.MaritalStatus {
	switch fold(raw) {
	case "S":
		return tables.MaritalSingle
	case "M":
		return tables.MaritalMarried
	default:
		return tables.MaritalUnknown
	}
}

// Gender maps a raw gender code or free text to the canonical vocabulary.
// Recognized forms are F/FEMALE and M/MALE, case-insensitive, with control
// characters and whitespace stripped before comparison.
func Gender(raw string) tables.Gender {
	switch fold(raw) {
	case "F", "FEMALE":
		return tables.GenderFemale
	case "M", "MALE":
		return tables.GenderMale
	default:
		return tables.GenderUnknown
	}
}

// ProductLine maps a raw product line code to the canonical vocabulary.
func ProductLine(raw string) tables.ProductLine {
	switch fold(raw) {
	case "M":
		return tables.LineMountain
	case "R":
		return tables.LineRoad
	case "T":
		return tables.LineTouring
	default:
		return tables.LineOther
	}
}

// Maintenance maps a raw maintenance flag to the canonical vocabulary.
func Maintenance(raw string) tables.MaintenanceFlag {
	switch fold(raw) {
	case "YES", "Y", "1", "TRUE":
		return tables.MaintenanceYes
	case "NO", "N", "0", "FALSE":
		return tables.MaintenanceNo
	default:
		return tables.MaintenanceUnknown
	}
}

// Country maps a raw country code or free text to a canonical country name.
// Known codes map to their full names; an empty value maps to Unknown; any
// other free text is scrubbed and title-cased.
func Country(raw string) string {
	switch fold(raw) {
	case "DE":
		return "Germany"
	case "US", "USA":
		return "United States"
	case "":
		return "Unknown"
	}
	// cases.Caser is stateful, so build one per call rather than sharing.
	return cases.Title(language.English).String(strings.ToLower(Scrub(raw)))
}

// nasTag is the legacy source-system marker observed on demographic customer
// keys that did not originate from the customer master.
const nasTag = "NAS"

// nasTagLen is the width of the tag prefix stripped from marked keys.
const nasTagLen = 3

// DemographicID rewrites a raw demographic customer id to the canonical key:
// scrubbed, and with the 3-character tag prefix stripped from the front when
// the key carries the NAS marker.
func DemographicID(raw string) string {
	id := Scrub(raw)
	if len(id) > nasTagLen && strings.Contains(strings.ToUpper(id), nasTag) {
		return id[nasTagLen:]
	}
	return id
}

// LocationID rewrites a raw location customer id to the canonical key:
// scrubbed, with embedded hyphens removed so it matches the customer-profile
// key format.
func LocationID(raw string) string {
	return strings.ReplaceAll(Scrub(raw), "-", "")
}
