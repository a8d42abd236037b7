package application

import (
	"context"

	"github.com/pagebound/bookstore/internal/review/domain"
)

type ReviewRepository interface {
	// ByBook returns the book's reviews, newest first, with the reviewer
	// display name resolved.
	ByBook(ctx context.Context, bookID int64) ([]domain.Review, error)
	Create(ctx context.Context, rev domain.Review) (domain.Review, error)
}

type BookFinder interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type UserFinder interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
