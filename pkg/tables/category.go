package tables

import "time"

// RawCategory is a product category row as extracted from the ERP source.
type RawCategory struct {
	ID          string `yaml:"id"`
	Category    string `yaml:"cat"`
	Subcategory string `yaml:"subcat"`
	Maintenance string `yaml:"maintenance"`
}

// Category is the cleansed product category record.
type Category struct {
	ID          string          `yaml:"id"`
	Category    string          `yaml:"cat"`
	Subcategory string          `yaml:"subcat"`
	Maintenance MaintenanceFlag `yaml:"maintenance"`
	LoadedAt    time.Time       `yaml:"dwh_create_date"`
}

// CategoryHeader is the silver categories column set.
var CategoryHeader = []string{"id", "cat", "subcat", "maintenance", "dwh_create_date"}

// Row renders the record as a silver table row matching CategoryHeader.
func (c Category) Row() []string {
	return []string{
		c.ID,
		c.Category,
		c.Subcategory,
		c.Maintenance.String(),
		formatTime(c.LoadedAt),
	}
}
