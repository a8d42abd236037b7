package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrBookNotFound = errors.New("book not found")

// Book is a catalog item. Price is a fixed-point decimal with two fraction
// digits; StockQty is the available-quantity counter consumed by checkout
// and must never go negative.
type Book struct {
	ID          int64
	Title       string
	Author      string
	Description string
	Price       decimal.Decimal
	StockQty    int
}
