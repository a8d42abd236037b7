package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pagebound/bookstore/internal/user/domain"
)

var ErrMissingCredentials = errors.New("email and password are required")

type Service struct {
	log  *slog.Logger
	repo UserRepository
}

func NewService(log *slog.Logger, repo UserRepository) *Service {
	return &Service{log: log, repo: repo}
}

// Register creates an account with a bcrypt-hashed password. Emails are
// stored lowercased so duplicates differing only in case collide.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.User{}, ErrMissingCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         "USER",
	})
	if err != nil {
		return domain.User{}, err
	}

	s.log.InfoContext(ctx, "account created", "user_id", user.ID)
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.User{}, ErrMissingCredentials
	}

	user, err := s.repo.ByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}
