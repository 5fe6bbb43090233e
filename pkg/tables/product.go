package tables

import "time"

// RawProduct is a product version row as extracted from the CRM source. Each
// row is one version of a product: prd_id identifies the version, prd_key is
// shared across all versions of the same product and encodes the category.
type RawProduct struct {
	ID    *int       `yaml:"prd_id"`
	Key   string     `yaml:"prd_key"`
	Name  string     `yaml:"prd_nm"`
	Cost  *float64   `yaml:"prd_cost"`
	Line  string     `yaml:"prd_line"`
	Start *time.Time `yaml:"prd_start_dt"`
	End   *time.Time `yaml:"prd_end_dt"`
}

// Product is the cleansed product version record. Key holds the clean suffix
// of the raw product key; CategoryID holds its rewritten category prefix.
// End is null for the currently active version of a product.
type Product struct {
	ID         int         `yaml:"prd_id"`
	CategoryID string      `yaml:"cat_id"`
	Key        string      `yaml:"prd_key"`
	Name       string      `yaml:"prd_nm"`
	Cost       float64     `yaml:"prd_cost"`
	Line       ProductLine `yaml:"prd_line"`
	Start      *time.Time  `yaml:"prd_start_dt"`
	End        *time.Time  `yaml:"prd_end_dt"`
	LoadedAt   time.Time   `yaml:"dwh_create_date"`
}

// ProductHeader is the silver products column set.
var ProductHeader = []string{
	"prd_id", "cat_id", "prd_key", "prd_nm", "prd_cost",
	"prd_line", "prd_start_dt", "prd_end_dt", "dwh_create_date",
}

// Row renders the record as a silver table row matching ProductHeader.
func (p Product) Row() []string {
	return []string{
		formatInt(p.ID),
		p.CategoryID,
		p.Key,
		p.Name,
		formatFloat(p.Cost),
		p.Line.String(),
		formatDate(p.Start),
		formatDate(p.End),
		formatTime(p.LoadedAt),
	}
}
