package application

import (
	"context"

	"github.com/pagebound/bookstore/internal/user/domain"
)

type UserRepository interface {
	// Create persists the user. Returns domain.ErrEmailTaken when the
	// email is already registered.
	Create(ctx context.Context, u domain.User) (domain.User, error)
	ByEmail(ctx context.Context, email string) (domain.User, error)
}
