package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pagebound/bookstore/internal/catalog/domain"
)

const bookCacheTTL = 60 * time.Second

type Service struct {
	log   *slog.Logger
	repo  BookRepository
	cache Cache
}

// NewService builds the catalog service. cache may be nil, in which case
// every read goes straight to the repository.
func NewService(log *slog.Logger, repo BookRepository, cache Cache) *Service {
	return &Service{log: log, repo: repo, cache: cache}
}

func (s *Service) List(ctx context.Context) ([]domain.Book, error) {
	return s.repo.List(ctx)
}

// Search matches the query against title and author. A blank query falls
// back to the full listing.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, query)
}

// ByID reads through the cache. Cache failures are logged and ignored; the
// catalog must keep serving when redis is down.
func (s *Service) ByID(ctx context.Context, id int64) (domain.Book, error) {
	key := fmt.Sprintf("catalog:book:%d", id)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err != nil {
			s.log.WarnContext(ctx, "book cache get failed", "book_id", id, "err", err)
		} else if raw != "" {
			var b domain.Book
			if err := json.Unmarshal([]byte(raw), &b); err == nil {
				return b, nil
			}
		}
	}

	b, err := s.repo.ByID(ctx, id)
	if err != nil {
		return domain.Book{}, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(b); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), bookCacheTTL); err != nil {
				s.log.WarnContext(ctx, "book cache set failed", "book_id", id, "err", err)
			}
		}
	}
	return b, nil
}
