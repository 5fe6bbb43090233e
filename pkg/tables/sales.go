package tables

import "time"

// RawSale is a sales line as extracted from the CRM source. The three date
// fields arrive as packed YYYYMMDD integers; amount, quantity and price are
// mutually redundant and any one of them may be corrupted or missing.
type RawSale struct {
	OrderNumber string   `yaml:"sls_ord_num"`
	ProductKey  string   `yaml:"sls_prd_key"`
	CustomerID  *int     `yaml:"sls_cust_id"`
	OrderDate   *int     `yaml:"sls_order_dt"`
	ShipDate    *int     `yaml:"sls_ship_dt"`
	DueDate     *int     `yaml:"sls_due_dt"`
	Sales       *float64 `yaml:"sls_sales"`
	Quantity    *int     `yaml:"sls_quantity"`
	Price       *float64 `yaml:"sls_price"`
}

// Sale is the cleansed sales line record. Sales, Quantity and Price satisfy
// the repair invariants: quantity and price never negative, amount recomputed
// when it was missing or non-positive.
type Sale struct {
	OrderNumber string     `yaml:"sls_ord_num"`
	ProductKey  string     `yaml:"sls_prd_key"`
	CustomerID  *int       `yaml:"sls_cust_id"`
	OrderDate   *time.Time `yaml:"sls_order_dt"`
	ShipDate    *time.Time `yaml:"sls_ship_dt"`
	DueDate     *time.Time `yaml:"sls_due_dt"`
	Sales       float64    `yaml:"sls_sales"`
	Quantity    int        `yaml:"sls_quantity"`
	Price       float64    `yaml:"sls_price"`
	LoadedAt    time.Time  `yaml:"dwh_create_date"`
}

// SaleHeader is the silver sales column set.
var SaleHeader = []string{
	"sls_ord_num", "sls_prd_key", "sls_cust_id", "sls_order_dt", "sls_ship_dt",
	"sls_due_dt", "sls_sales", "sls_quantity", "sls_price", "dwh_create_date",
}

// Row renders the record as a silver table row matching SaleHeader.
func (s Sale) Row() []string {
	customer := ""
	if s.CustomerID != nil {
		customer = formatInt(*s.CustomerID)
	}
	return []string{
		s.OrderNumber,
		s.ProductKey,
		customer,
		formatDate(s.OrderDate),
		formatDate(s.ShipDate),
		formatDate(s.DueDate),
		formatFloat(s.Sales),
		formatInt(s.Quantity),
		formatFloat(s.Price),
		formatTime(s.LoadedAt),
	}
}
