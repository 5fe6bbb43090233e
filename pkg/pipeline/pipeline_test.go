package pipeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lodeworks/refinery/pkg/pipeline"
	"github.com/lodeworks/refinery/pkg/tables"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func iptr(i int) *int         { return &i }
func fptr(f float64) *float64 { return &f }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCustomersLaterCreationDateWins(t *testing.T) {
	raw := []tables.RawCustomer{
		{ID: iptr(1), Key: "AW00000001", MaritalStatus: "S", Gender: "M", CreatedAt: datePtr(2023, 1, 1)},
		{ID: iptr(1), Key: "AW00000001", MaritalStatus: "M", Gender: "M", CreatedAt: datePtr(2023, 6, 1)},
	}

	got := pipeline.Customers(raw, now)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, tables.MaritalMarried, got[0].MaritalStatus, "later creation date wins")
	assert.Equal(t, now, got[0].LoadedAt)
}

func TestCustomersDropNullKeyAndScrub(t *testing.T) {
	raw := []tables.RawCustomer{
		{ID: nil, FirstName: "ghost"},
		{ID: iptr(2), FirstName: "  Jon\r", LastName: "Snow\n ", MaritalStatus: "X", Gender: ""},
	}

	got := pipeline.Customers(raw, now)
	require.Len(t, got, 1)
	assert.Equal(t, "Jon", got[0].FirstName)
	assert.Equal(t, "Snow", got[0].LastName)
	assert.Equal(t, tables.MaritalUnknown, got[0].MaritalStatus)
	assert.Equal(t, tables.GenderUnknown, got[0].Gender)
}

func TestCustomersSortedByID(t *testing.T) {
	raw := []tables.RawCustomer{
		{ID: iptr(9)},
		{ID: iptr(3)},
		{ID: iptr(5)},
	}

	got := pipeline.Customers(raw, now)
	require.Len(t, got, 3)
	assert.Equal(t, []int{3, 5, 9}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestProductsVersionChain(t *testing.T) {
	raw := []tables.RawProduct{
		{ID: iptr(1), Key: "CO-RF-FR-R92B-58", Name: "Frame", Line: "R", Start: datePtr(2021, 1, 1)},
		{ID: iptr(2), Key: "CO-RF-FR-R92B-58", Name: "Frame", Line: "R", Start: datePtr(2022, 1, 1)},
		{ID: iptr(3), Key: "CO-RF-FR-R92B-58", Name: "Frame", Line: "R", Start: datePtr(2023, 1, 1)},
	}

	got := pipeline.Products(raw, now)
	require.Len(t, got, 3)

	// Each version closes the day before its successor starts; the newest
	// keeps its raw (null, open-ended) end date.
	require.NotNil(t, got[0].End)
	assert.Equal(t, *datePtr(2021, 12, 31), *got[0].End)
	require.NotNil(t, got[1].End)
	assert.Equal(t, *datePtr(2022, 12, 31), *got[1].End)
	assert.Nil(t, got[2].End)

	for _, p := range got {
		assert.Equal(t, "CO_RF", p.CategoryID, "category prefix rewritten")
		assert.Equal(t, "FR-R92B-58", p.Key, "clean suffix after fixed offset")
		assert.Equal(t, tables.LineRoad, p.Line)
	}
}

func TestProductsNullCostAndUnknownLine(t *testing.T) {
	raw := []tables.RawProduct{
		{ID: iptr(10), Key: "AC-HE-HL-U509", Name: " Helmet ", Cost: nil, Line: "Z", Start: datePtr(2022, 5, 1)},
	}

	got := pipeline.Products(raw, now)
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].Cost, "null cost defaults to 0")
	assert.Equal(t, tables.LineOther, got[0].Line)
	assert.Equal(t, "Helmet", got[0].Name)
}

func TestProductsDuplicateVersionIDCollapses(t *testing.T) {
	raw := []tables.RawProduct{
		{ID: iptr(7), Key: "CL-SO-SO-R809-M", Start: datePtr(2021, 1, 1)},
		{ID: iptr(7), Key: "CL-SO-SO-R809-M", Start: datePtr(2022, 1, 1)},
	}

	got := pipeline.Products(raw, now)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Start)
	assert.Equal(t, *datePtr(2022, 1, 1), *got[0].Start, "latest start date survives")
}

func TestSalesRepairScenarios(t *testing.T) {
	raw := []tables.RawSale{
		// Null amount recomputed from quantity x price.
		{OrderNumber: "SO1", ProductKey: "FR-R92B-58", Sales: nil, Quantity: iptr(5), Price: fptr(10)},
		// Present amount kept; negative price sign-corrected, not re-derived.
		{OrderNumber: "SO2", ProductKey: "FR-R92B-58", Sales: fptr(100), Quantity: iptr(0), Price: fptr(-20)},
	}

	got := pipeline.Sales(raw, now)
	require.Len(t, got, 2)

	assert.Equal(t, 50.0, got[0].Sales)
	assert.Equal(t, 100.0, got[1].Sales)
	assert.Equal(t, 0, got[1].Quantity)
	assert.Equal(t, 20.0, got[1].Price)
}

func TestSalesPackedDates(t *testing.T) {
	raw := []tables.RawSale{
		{
			OrderNumber: "SO3",
			ProductKey:  "HL-U509",
			OrderDate:   iptr(20240315),
			ShipDate:    iptr(20240230), // invalid calendar date, 8 digits
			DueDate:     iptr(0),
			Sales:       fptr(10), Quantity: iptr(1), Price: fptr(10),
		},
	}

	got := pipeline.Sales(raw, now)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].OrderDate)
	assert.Equal(t, *datePtr(2024, 3, 15), *got[0].OrderDate)
	assert.Nil(t, got[0].ShipDate, "record retained with null date")
	assert.Nil(t, got[0].DueDate)
}

func TestSalesCompositeKeySurvivorship(t *testing.T) {
	raw := []tables.RawSale{
		{OrderNumber: "SO4", ProductKey: "A", OrderDate: iptr(20230101), Quantity: iptr(1), Price: fptr(5), Sales: fptr(5)},
		{OrderNumber: "SO4", ProductKey: "A", OrderDate: iptr(20230601), Quantity: iptr(2), Price: fptr(5), Sales: fptr(10)},
		{OrderNumber: "SO4", ProductKey: "B", OrderDate: iptr(20230101), Quantity: iptr(1), Price: fptr(5), Sales: fptr(5)},
		{OrderNumber: "", ProductKey: "C", Quantity: iptr(1), Price: fptr(5), Sales: fptr(5)},
	}

	got := pipeline.Sales(raw, now)
	require.Len(t, got, 2, "one survivor per order+product, null keys dropped")
	assert.Equal(t, 2, got[0].Quantity, "latest order date wins")
	assert.Equal(t, "B", got[1].ProductKey)
}

func TestDemographicsDetagAndClampBirthDate(t *testing.T) {
	raw := []tables.RawDemographic{
		{ID: "NASAW00011000", BirthDate: datePtr(1985, 3, 12), Gender: "FEMALE"},
		{ID: "AW00011001", BirthDate: datePtr(2030, 1, 1), Gender: "male"},
	}

	got := pipeline.Demographics(raw, now)
	require.Len(t, got, 2)

	assert.Equal(t, "AW00011000", got[0].ID, "tag prefix stripped")
	assert.Equal(t, tables.GenderFemale, got[0].Gender)
	require.NotNil(t, got[0].BirthDate)

	assert.Nil(t, got[1].BirthDate, "future birth date nulled, record retained")
	assert.Equal(t, tables.GenderMale, got[1].Gender)
}

func TestDemographicsTaggedAndUntaggedCollapse(t *testing.T) {
	raw := []tables.RawDemographic{
		{ID: "NASAW00011000", BirthDate: datePtr(1985, 3, 12), Gender: "F"},
		{ID: "AW00011000", BirthDate: datePtr(1990, 3, 12), Gender: "M"},
	}

	got := pipeline.Demographics(raw, now)
	require.Len(t, got, 1, "keys are de-tagged before matching")
	assert.Equal(t, tables.GenderMale, got[0].Gender, "latest birth date wins")
}

func TestLocationsFirstWinsAndCountryCanonical(t *testing.T) {
	raw := []tables.RawLocation{
		{ID: "AW-00011000", Country: "US"},
		{ID: "AW00011000", Country: "Germany"}, // duplicate after hyphen removal
		{ID: "AW-00011001", Country: "DE"},
		{ID: "AW-00011002", Country: ""},
		{ID: "AW-00011003", Country: "australia\r\n"},
	}

	got := pipeline.Locations(raw, now)
	require.Len(t, got, 4)
	assert.Equal(t, "United States", got[0].Country, "first record in input order wins")
	assert.Equal(t, "Germany", got[1].Country)
	assert.Equal(t, "Unknown", got[2].Country)
	assert.Equal(t, "Australia", got[3].Country)
}

func TestCategories(t *testing.T) {
	raw := []tables.RawCategory{
		{ID: "AC", Category: " Accessories ", Subcategory: "Helmets\r", Maintenance: "Yes"},
		{ID: "AC", Category: "Accessories", Subcategory: "Helmets", Maintenance: "No"},
		{ID: "", Category: "orphan"},
		{ID: "BI", Category: "Bikes", Subcategory: "Road Bikes", Maintenance: "wat"},
	}

	got := pipeline.Categories(raw, now)
	require.Len(t, got, 2)
	assert.Equal(t, "Accessories", got[0].Category)
	assert.Equal(t, "Helmets", got[0].Subcategory)
	assert.Equal(t, tables.MaintenanceYes, got[0].Maintenance, "first record wins")
	assert.Equal(t, tables.MaintenanceUnknown, got[1].Maintenance)
}

func TestTransformsAreIdempotent(t *testing.T) {
	raw := []tables.RawSale{
		{OrderNumber: "SO9", ProductKey: "X", Sales: nil, Quantity: iptr(3), Price: fptr(4)},
		{OrderNumber: "SO8", ProductKey: "Y", Sales: fptr(9), Quantity: iptr(-1), Price: nil},
	}

	first := pipeline.Sales(raw, now)
	second := pipeline.Sales(raw, now)
	assert.Equal(t, first, second, "identical input and clock yield identical output")
}

func TestResultDropped(t *testing.T) {
	r := pipeline.Result{RowsIn: 10, RowsOut: 7}
	assert.Equal(t, 3, r.Dropped())
}
