package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusShipped Status = "SHIPPED"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrOrderNumberTaken = errors.New("order number already exists")
)

// InsufficientStockError reports which book blocked a checkout and the
// available vs. requested quantities so the client can adjust the cart.
type InsufficientStockError struct {
	BookID    int64
	Title     string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough stock for %q. In stock: %d, requested: %d", e.Title, e.Available, e.Requested)
}

type ShippingAddress struct {
	Name     string
	Address1 string
	Address2 string
	City     string
	Region   string
	Postal   string
	Country  string
}

// Order is an immutable, finalized purchase. Only Status is expected to
// change after creation.
type Order struct {
	ID          int64
	Number      string
	UserID      int64
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	ShippingFee decimal.Decimal
	Total       decimal.Decimal
	Status      Status
	PaymentRef  string // placeholder; no gateway integration exists
	PlacedAt    time.Time
	Ship        ShippingAddress
	Items       []Item
}

// Item snapshots a purchased line: UnitPrice is the catalog price at the
// instant of purchase and never reflects later price changes.
type Item struct {
	ID        int64
	BookID    int64
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}
