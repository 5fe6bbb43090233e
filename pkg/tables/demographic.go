package tables

import "time"

// RawDemographic is a customer demographic row as extracted from the ERP
// source. IDs may carry the legacy NAS prefix tag in front of the customer
// key; gender arrives as free text or a single-letter code.
type RawDemographic struct {
	ID        string     `yaml:"cid"`
	BirthDate *time.Time `yaml:"bdate"`
	Gender    string     `yaml:"gen"`
}

// Demographic is the cleansed customer demographic record. ID is the
// canonical customer key with any source-system tag stripped; BirthDate is
// null when the raw value was in the future.
type Demographic struct {
	ID        string     `yaml:"cid"`
	BirthDate *time.Time `yaml:"bdate"`
	Gender    Gender     `yaml:"gen"`
	LoadedAt  time.Time  `yaml:"dwh_create_date"`
}

// DemographicHeader is the silver demographics column set.
var DemographicHeader = []string{"cid", "bdate", "gen", "dwh_create_date"}

// Row renders the record as a silver table row matching DemographicHeader.
func (d Demographic) Row() []string {
	return []string{
		d.ID,
		formatDate(d.BirthDate),
		d.Gender.String(),
		formatTime(d.LoadedAt),
	}
}
