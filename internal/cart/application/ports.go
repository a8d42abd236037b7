package application

import (
	"context"

	"github.com/pagebound/bookstore/internal/cart/domain"
)

type CartRepository interface {
	// GetOrCreate returns the user's cart, creating an empty one on first
	// access. Returns user.ErrUserNotFound if the user does not exist.
	GetOrCreate(ctx context.Context, userID int64) (domain.Cart, error)
	Lines(ctx context.Context, cartID int64) ([]domain.Line, error)
	// MergeLine atomically adds qty to the (cart, book) line, creating it
	// when absent.
	MergeLine(ctx context.Context, cartID, bookID int64, qty int) error
	// SetLineQuantity overwrites the line's quantity. Returns
	// domain.ErrLineNotFound when no such line exists.
	SetLineQuantity(ctx context.Context, cartID, bookID int64, qty int) error
	// DeleteLine removes the line. Returns domain.ErrLineNotFound when no
	// such line exists.
	DeleteLine(ctx context.Context, cartID, bookID int64) error
	Clear(ctx context.Context, cartID int64) error
}

type BookFinder interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
