package repair_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lodeworks/refinery/pkg/repair"
)

func fptr(f float64) *float64 { return &f }
func iptr(i int) *int         { return &i }

func TestSales(t *testing.T) {
	tests := []struct {
		name         string
		amount       *float64
		quantity     *int
		price        *float64
		wantAmount   float64
		wantQuantity int
		wantPrice    float64
	}{
		{
			name:   "consistent input untouched",
			amount: fptr(50), quantity: iptr(5), price: fptr(10),
			wantAmount: 50, wantQuantity: 5, wantPrice: 10,
		},
		{
			name:   "null amount recomputed",
			amount: nil, quantity: iptr(5), price: fptr(10),
			wantAmount: 50, wantQuantity: 5, wantPrice: 10,
		},
		{
			name:   "non-positive amount recomputed",
			amount: fptr(-1), quantity: iptr(3), price: fptr(7),
			wantAmount: 21, wantQuantity: 3, wantPrice: 7,
		},
		{
			name:   "zero quantity with negative price sign-corrected",
			amount: fptr(100), quantity: iptr(0), price: fptr(-20),
			wantAmount: 100, wantQuantity: 0, wantPrice: 20,
		},
		{
			name:   "null quantity zeroed",
			amount: fptr(30), quantity: nil, price: fptr(10),
			wantAmount: 30, wantQuantity: 0, wantPrice: 10,
		},
		{
			name:   "negative quantity zeroed",
			amount: fptr(30), quantity: iptr(-3), price: fptr(10),
			wantAmount: 30, wantQuantity: 0, wantPrice: 10,
		},
		{
			name:   "null price derived from amount and quantity",
			amount: fptr(40), quantity: iptr(4), price: nil,
			wantAmount: 40, wantQuantity: 4, wantPrice: 10,
		},
		{
			name:   "zero price derived from amount and quantity",
			amount: fptr(40), quantity: iptr(8), price: fptr(0),
			wantAmount: 40, wantQuantity: 8, wantPrice: 5,
		},
		{
			name:   "null price with zero quantity defaults to zero",
			amount: fptr(40), quantity: iptr(0), price: nil,
			wantAmount: 40, wantQuantity: 0, wantPrice: 0,
		},
		{
			name:   "null amount recomputed from negative price",
			amount: nil, quantity: iptr(5), price: fptr(-20),
			wantAmount: 100, wantQuantity: 5, wantPrice: 20,
		},
		{
			name:   "negative amount recomputed from negative price",
			amount: fptr(-100), quantity: iptr(5), price: fptr(-20),
			wantAmount: 100, wantQuantity: 5, wantPrice: 20,
		},
		{
			name:   "everything null",
			amount: nil, quantity: nil, price: nil,
			wantAmount: 0, wantQuantity: 0, wantPrice: 0,
		},
		{
			name:   "amount null with only quantity present",
			amount: nil, quantity: iptr(2), price: nil,
			wantAmount: 0, wantQuantity: 2, wantPrice: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, quantity, price := repair.Sales(tt.amount, tt.quantity, tt.price)
			assert.Equal(t, tt.wantAmount, amount, "amount")
			assert.Equal(t, tt.wantQuantity, quantity, "quantity")
			assert.Equal(t, tt.wantPrice, price, "price")
			assert.GreaterOrEqual(t, amount, 0.0)
			assert.GreaterOrEqual(t, quantity, 0)
			assert.GreaterOrEqual(t, price, 0.0)
		})
	}
}

func TestSplitProductKey(t *testing.T) {
	tests := []struct {
		key        string
		wantCatID  string
		wantSuffix string
	}{
		{"CO-RF-FR-R92B-58", "CO_RF", "FR-R92B-58"},
		{"AC-HE-HL-U509-R", "AC_HE", "HL-U509-R"},
		{"CO-RF", "CO_RF", ""},   // no suffix past the offset
		{"CO-R", "CO_R", ""},     // shorter than the prefix
		{"CO-RF-", "CO_RF", ""},  // separator only
		{"CO-RF-X", "CO_RF", "X"},
		{"", "", ""},
	}
	for _, tt := range tests {
		catID, suffix := repair.SplitProductKey(tt.key)
		assert.Equal(t, tt.wantCatID, catID, "category id of %q", tt.key)
		assert.Equal(t, tt.wantSuffix, suffix, "suffix of %q", tt.key)
	}
}

func TestCost(t *testing.T) {
	assert.Equal(t, 0.0, repair.Cost(nil))
	assert.Equal(t, 12.5, repair.Cost(fptr(12.5)))
	assert.Equal(t, -3.0, repair.Cost(fptr(-3)), "only null gets special casing")
}

func TestBirthDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	past := time.Date(1985, 3, 12, 0, 0, 0, 0, time.UTC)
	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, repair.BirthDate(nil, now))
	assert.Nil(t, repair.BirthDate(&future, now), "future birth dates are invalid")
	assert.Equal(t, &past, repair.BirthDate(&past, now))
	assert.Equal(t, &now, repair.BirthDate(&now, now), "only strictly future dates are nulled")
}
