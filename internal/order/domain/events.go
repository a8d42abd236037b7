package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderPlaced is published through the outbox once a checkout commits.
type OrderPlaced struct {
	OrderID     int64             `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	UserID      int64             `json:"user_id"`
	Total       decimal.Decimal   `json:"total"`
	PlacedAt    time.Time         `json:"placed_at"`
	Items       []OrderPlacedItem `json:"items"`
}

type OrderPlacedItem struct {
	BookID   int64 `json:"book_id"`
	Quantity int   `json:"quantity"`
}
