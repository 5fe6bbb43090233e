package tables

import "time"

// RawLocation is a customer location row as extracted from the ERP source.
// IDs arrive with embedded hyphens; country is free text or a two/three
// letter code.
type RawLocation struct {
	ID      string `yaml:"cid"`
	Country string `yaml:"cntry"`
}

// Location is the cleansed customer location record. ID matches the
// customer-profile key format (hyphens removed); Country is a canonical
// country name, or Unknown when the raw value was empty.
type Location struct {
	ID       string    `yaml:"cid"`
	Country  string    `yaml:"cntry"`
	LoadedAt time.Time `yaml:"dwh_create_date"`
}

// LocationHeader is the silver locations column set.
var LocationHeader = []string{"cid", "cntry", "dwh_create_date"}

// Row renders the record as a silver table row matching LocationHeader.
func (l Location) Row() []string {
	return []string{l.ID, l.Country, formatTime(l.LoadedAt)}
}
