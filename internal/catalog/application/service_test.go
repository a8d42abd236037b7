package application

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagebound/bookstore/internal/catalog/domain"
)

type countingBookRepo struct {
	books  map[int64]domain.Book
	byID   int
	lists  int
	search int
}

func (r *countingBookRepo) List(context.Context) ([]domain.Book, error) {
	r.lists++
	var out []domain.Book
	for _, b := range r.books {
		out = append(out, b)
	}
	return out, nil
}

func (r *countingBookRepo) Search(context.Context, string) ([]domain.Book, error) {
	r.search++
	return nil, nil
}

func (r *countingBookRepo) ByID(_ context.Context, id int64) (domain.Book, error) {
	r.byID++
	b, ok := r.books[id]
	if !ok {
		return domain.Book{}, domain.ErrBookNotFound
	}
	return b, nil
}

func (r *countingBookRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.books[id]
	return ok, nil
}

type memoryCache map[string]string

func (c memoryCache) Get(_ context.Context, key string) (string, error) { return c[key], nil }
func (c memoryCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c[key] = value
	return nil
}

func testBook() domain.Book {
	return domain.Book{ID: 7, Title: "Refactoring", Author: "Martin Fowler", Price: decimal.RequireFromString("20.00"), StockQty: 5}
}

func TestByIDPopulatesAndHitsCache(t *testing.T) {
	repo := &countingBookRepo{books: map[int64]domain.Book{7: testBook()}}
	c := memoryCache{}
	svc := NewService(slog.New(slog.DiscardHandler), repo, c)

	b, err := svc.ByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Refactoring", b.Title)
	assert.Equal(t, 1, repo.byID)

	b, err = svc.ByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Refactoring", b.Title)
	assert.True(t, b.Price.Equal(decimal.RequireFromString("20.00")))
	assert.Equal(t, 1, repo.byID, "second read must come from the cache")
}

func TestByIDUnknownBook(t *testing.T) {
	repo := &countingBookRepo{books: map[int64]domain.Book{}}
	svc := NewService(slog.New(slog.DiscardHandler), repo, memoryCache{})

	_, err := svc.ByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestByIDWithoutCache(t *testing.T) {
	repo := &countingBookRepo{books: map[int64]domain.Book{7: testBook()}}
	svc := NewService(slog.New(slog.DiscardHandler), repo, nil)

	_, err := svc.ByID(context.Background(), 7)
	require.NoError(t, err)
	_, err = svc.ByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.byID)
}

func TestSearchBlankQueryFallsBackToList(t *testing.T) {
	repo := &countingBookRepo{books: map[int64]domain.Book{7: testBook()}}
	svc := NewService(slog.New(slog.DiscardHandler), repo, memoryCache{})

	_, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lists)
	assert.Equal(t, 0, repo.search)

	_, err = svc.Search(context.Background(), "fowler")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.search)
}
