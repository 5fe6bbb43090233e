package tables

// Canonical vocabularies. Every enumerated silver field takes values only
// from its closed set below; raw codes and free text never pass through.
// Unmapped inputs resolve to the explicit Unknown (or Other) member, never to
// null and never to the raw value.

// MaritalStatus is the canonical marital status vocabulary.
type MaritalStatus string

// Marital status values.
const (
	MaritalSingle  MaritalStatus = "Single"
	MaritalMarried MaritalStatus = "Married"
	MaritalUnknown MaritalStatus = "Unknown"
)

// String returns the string representation of a marital status.
func (m MaritalStatus) String() string { return string(m) }

// IsValid reports whether the value belongs to the vocabulary.
func (m MaritalStatus) IsValid() bool {
	switch m {
	case MaritalSingle, MaritalMarried, MaritalUnknown:
		return true
	default:
		return false
	}
}

// Gender is the canonical gender vocabulary.
type Gender string

// Gender values.
const (
	GenderFemale  Gender = "Female"
	GenderMale    Gender = "Male"
	GenderUnknown Gender = "Unknown"
)

// String returns the string representation of a gender.
func (g Gender) String() string { return string(g) }

// IsValid reports whether the value belongs to the vocabulary.
func (g Gender) IsValid() bool {
	switch g {
	case GenderFemale, GenderMale, GenderUnknown:
		return true
	default:
		return false
	}
}

// ProductLine is the canonical product line vocabulary.
type ProductLine string

// Product line values.
const (
	LineMountain ProductLine = "Mountain"
	LineRoad     ProductLine = "Road"
	LineTouring  ProductLine = "Touring"
	LineOther    ProductLine = "Other"
)

// String returns the string representation of a product line.
func (p ProductLine) String() string { return string(p) }

// IsValid reports whether the value belongs to the vocabulary.
func (p ProductLine) IsValid() bool {
	switch p {
	case LineMountain, LineRoad, LineTouring, LineOther:
		return true
	default:
		return false
	}
}

// MaintenanceFlag is the canonical maintenance flag vocabulary.
type MaintenanceFlag string

// Maintenance flag values.
const (
	MaintenanceYes     MaintenanceFlag = "Yes"
	MaintenanceNo      MaintenanceFlag = "No"
	MaintenanceUnknown MaintenanceFlag = "Unknown"
)

// String returns the string representation of a maintenance flag.
func (m MaintenanceFlag) String() string { return string(m) }

// IsValid reports whether the value belongs to the vocabulary.
func (m MaintenanceFlag) IsValid() bool {
	switch m {
	case MaintenanceYes, MaintenanceNo, MaintenanceUnknown:
		return true
	default:
		return false
	}
}
