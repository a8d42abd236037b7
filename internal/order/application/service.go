package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pagebound/bookstore/internal/order/domain"
)

// numberAttempts bounds regeneration when a freshly drawn order number
// collides with an existing one.
const numberAttempts = 3

type Service struct {
	log  *slog.Logger
	repo OrderRepository
	rnd  io.Reader
}

// NewService builds the order service. rnd feeds order-number generation;
// production wiring passes crypto/rand.Reader, tests a fixed reader.
func NewService(log *slog.Logger, repo OrderRepository, rnd io.Reader) *Service {
	return &Service{log: log, repo: repo, rnd: rnd}
}

// Checkout converts the user's cart into an order. Country defaults to US
// when left blank.
func (s *Service) Checkout(ctx context.Context, userID int64, addr domain.ShippingAddress) (domain.Order, error) {
	if strings.TrimSpace(addr.Country) == "" {
		addr.Country = "US"
	}

	for attempt := 0; attempt < numberAttempts; attempt++ {
		number, err := domain.NewOrderNumber(s.rnd)
		if err != nil {
			return domain.Order{}, err
		}

		order, err := s.repo.Checkout(ctx, userID, number, addr)
		if errors.Is(err, domain.ErrOrderNumberTaken) {
			s.log.WarnContext(ctx, "order number collision, regenerating", "order_number", number)
			continue
		}
		if err != nil {
			return domain.Order{}, err
		}

		s.log.InfoContext(ctx, "order placed",
			"order_id", order.ID, "order_number", order.Number, "user_id", userID, "total", order.Total)
		return order, nil
	}
	return domain.Order{}, fmt.Errorf("checkout: order number collided %d times", numberAttempts)
}

func (s *Service) History(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.repo.HistoryByUser(ctx, userID)
}
