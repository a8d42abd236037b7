package application

import (
	"context"

	"github.com/pagebound/bookstore/internal/order/domain"
)

type OrderRepository interface {
	// Checkout runs the whole cart-to-order transaction: user and cart
	// validation, stock check under row locks, pricing at current catalog
	// prices, order + item creation, stock decrement, outbox event and
	// cart clearing. All of it commits or none of it does.
	Checkout(ctx context.Context, userID int64, orderNumber string, addr domain.ShippingAddress) (domain.Order, error)
	HistoryByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}
