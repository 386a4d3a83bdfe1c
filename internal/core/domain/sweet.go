package domain

import (
	"errors"
	"math"
	"time"
)

var ErrSweetNotFound = errors.New("sweet not found")
var ErrOutOfStock = errors.New("out of stock")
var ErrInvalidAmount = errors.New("restock amount must be positive")
var ErrStockLimitExceeded = errors.New("stock limit exceeded")
var ErrInvalidInput = errors.New("invalid input")

// MaxQuantity caps the stock of a single entry. Restocks that would push the
// quantity past it are rejected, which keeps the counter far away from int64
// overflow.
const MaxQuantity int64 = 1_000_000_000

// maxCents bounds the cents representation to the range where float64 holds
// integers exactly (2^53). Beyond it the float→int64 conversion is undefined.
const maxCents = float64(1 << 53)

// Sweet is a catalog entry backed by a shared stock pool.
//
// Price is held as integer cents so currency precision never passes through
// binary floating point. Quantity never goes below zero: the repository only
// decrements it through a conditional update filtered on quantity > 0.
type Sweet struct {
	ID         int64     `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	Category   string    `json:"category" bson:"category"`
	PriceCents int64     `json:"price_cents" bson:"price_cents"`
	Quantity   int64     `json:"quantity" bson:"quantity"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Price returns the price as a decimal amount (dollars.cents).
func (s *Sweet) Price() float64 {
	return CentsToPrice(s.PriceCents)
}

// PriceToCents converts a decimal price to integer cents, rounding half away
// from zero. Returns false for values that cannot represent a valid price,
// including those too large for an exact cents conversion.
func PriceToCents(price float64) (int64, bool) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, false
	}
	cents := math.Round(price * 100)
	if cents >= maxCents {
		return 0, false
	}
	return int64(cents), true
}

// PriceBoundToCents converts a search price bound to cents. Bounds are
// filters, not stored values, so out-of-range inputs clamp instead of
// failing: negative or NaN bounds floor at zero, oversized ones saturate.
func PriceBoundToCents(price float64) int64 {
	cents := math.Round(price * 100)
	switch {
	case math.IsNaN(cents) || cents <= 0:
		return 0
	case cents >= maxCents:
		return int64(maxCents)
	}
	return int64(cents)
}

// CentsToPrice converts integer cents back to a decimal amount.
func CentsToPrice(cents int64) float64 {
	return float64(cents) / 100
}
