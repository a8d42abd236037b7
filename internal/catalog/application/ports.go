package application

import (
	"context"
	"time"

	"github.com/pagebound/bookstore/internal/catalog/domain"
)

type BookRepository interface {
	List(ctx context.Context) ([]domain.Book, error)
	Search(ctx context.Context, query string) ([]domain.Book, error)
	ByID(ctx context.Context, id int64) (domain.Book, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
