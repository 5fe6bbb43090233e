package tables

import "time"

// RawCustomer is a customer profile row as extracted from the CRM source.
// Nothing about it is guaranteed: the id may be missing, codes may be
// anything, and duplicates per id are common.
type RawCustomer struct {
	ID            *int       `yaml:"cst_id"`
	Key           string     `yaml:"cst_key"`
	FirstName     string     `yaml:"cst_firstname"`
	LastName      string     `yaml:"cst_lastname"`
	MaritalStatus string     `yaml:"cst_marital_status"`
	Gender        string     `yaml:"cst_gndr"`
	CreatedAt     *time.Time `yaml:"cst_create_date"`
}

// Customer is the cleansed customer profile record.
type Customer struct {
	ID            int           `yaml:"cst_id"`
	Key           string        `yaml:"cst_key"`
	FirstName     string        `yaml:"cst_firstname"`
	LastName      string        `yaml:"cst_lastname"`
	MaritalStatus MaritalStatus `yaml:"cst_marital_status"`
	Gender        Gender        `yaml:"cst_gndr"`
	CreatedAt     *time.Time    `yaml:"cst_create_date"`
	LoadedAt      time.Time     `yaml:"dwh_create_date"`
}

// CustomerHeader is the silver customers column set.
var CustomerHeader = []string{
	"cst_id", "cst_key", "cst_firstname", "cst_lastname",
	"cst_marital_status", "cst_gndr", "cst_create_date", "dwh_create_date",
}

// Row renders the record as a silver table row matching CustomerHeader.
func (c Customer) Row() []string {
	return []string{
		formatInt(c.ID),
		c.Key,
		c.FirstName,
		c.LastName,
		c.MaritalStatus.String(),
		c.Gender.String(),
		formatDate(c.CreatedAt),
		formatTime(c.LoadedAt),
	}
}
