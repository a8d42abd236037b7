package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrLineNotFound = errors.New("cart item not found")

// Cart is the single in-progress selection a user owns. It is created
// lazily on first access and survives checkout (emptied, not deleted).
type Cart struct {
	ID     int64
	UserID int64
}

// Line is one (book, quantity) pairing within a cart, joined with the
// current catalog fields the cart endpoints echo back.
type Line struct {
	BookID   int64
	Title    string
	Author   string
	Price    decimal.Decimal
	Quantity int
}

// NormalizeQuantity applies the permissive add policy: non-positive
// requested quantities are treated as 1.
func NormalizeQuantity(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}
