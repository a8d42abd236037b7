package application

import (
	"context"
	"log/slog"
	"strings"

	catalogdomain "github.com/pagebound/bookstore/internal/catalog/domain"
	"github.com/pagebound/bookstore/internal/review/domain"
	userdomain "github.com/pagebound/bookstore/internal/user/domain"
)

type Service struct {
	log   *slog.Logger
	repo  ReviewRepository
	books BookFinder
	users UserFinder
}

func NewService(log *slog.Logger, repo ReviewRepository, books BookFinder, users UserFinder) *Service {
	return &Service{log: log, repo: repo, books: books, users: users}
}

func (s *Service) ByBook(ctx context.Context, bookID int64) ([]domain.Review, error) {
	ok, err := s.books.Exists(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, catalogdomain.ErrBookNotFound
	}
	return s.repo.ByBook(ctx, bookID)
}

func (s *Service) Create(ctx context.Context, bookID, userID int64, rating int, body string) (domain.Review, error) {
	if rating < 1 || rating > 5 {
		return domain.Review{}, domain.ErrInvalidRating
	}

	ok, err := s.books.Exists(ctx, bookID)
	if err != nil {
		return domain.Review{}, err
	}
	if !ok {
		return domain.Review{}, catalogdomain.ErrBookNotFound
	}

	ok, err = s.users.Exists(ctx, userID)
	if err != nil {
		return domain.Review{}, err
	}
	if !ok {
		return domain.Review{}, userdomain.ErrUserNotFound
	}

	return s.repo.Create(ctx, domain.Review{
		BookID: bookID,
		UserID: userID,
		Rating: rating,
		Body:   strings.TrimSpace(body),
	})
}
