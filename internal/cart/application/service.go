package application

import (
	"context"
	"log/slog"

	"github.com/pagebound/bookstore/internal/cart/domain"
	catalogdomain "github.com/pagebound/bookstore/internal/catalog/domain"
)

type Service struct {
	log   *slog.Logger
	repo  CartRepository
	books BookFinder
}

func NewService(log *slog.Logger, repo CartRepository, books BookFinder) *Service {
	return &Service{log: log, repo: repo, books: books}
}

func (s *Service) GetCart(ctx context.Context, userID int64) ([]domain.Line, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.Lines(ctx, cart.ID)
}

// AddItem merges the requested quantity into the user's cart line for the
// book; an existing line is incremented, not overwritten. Non-positive
// quantities are normalized to 1.
func (s *Service) AddItem(ctx context.Context, userID, bookID int64, quantity int) ([]domain.Line, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	ok, err := s.books.Exists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, catalogdomain.ErrBookNotFound
	}

	if err := s.repo.MergeLine(ctx, cart.ID, bookID, domain.NormalizeQuantity(quantity)); err != nil {
		return nil, err
	}
	return s.repo.Lines(ctx, cart.ID)
}

// UpdateItem sets an existing line's quantity directly. A quantity of zero
// or less removes the line.
func (s *Service) UpdateItem(ctx context.Context, userID, bookID int64, quantity int) ([]domain.Line, error) {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		err = s.repo.DeleteLine(ctx, cart.ID, bookID)
	} else {
		err = s.repo.SetLineQuantity(ctx, cart.ID, bookID, quantity)
	}
	if err != nil {
		return nil, err
	}
	return s.repo.Lines(ctx, cart.ID)
}

func (s *Service) Clear(ctx context.Context, userID int64) error {
	cart, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.Clear(ctx, cart.ID)
}
