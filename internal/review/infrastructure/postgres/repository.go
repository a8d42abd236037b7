package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pagebound/bookstore/internal/review/domain"
	userdomain "github.com/pagebound/bookstore/internal/user/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) ByBook(ctx context.Context, bookID int64) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT rv.id, rv.book_id, rv.user_id, u.first_name, u.email,
			rv.rating, rv.body, rv.created_at
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.book_id = $1
		ORDER BY rv.id DESC
	`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var (
			rev    domain.Review
			author userdomain.User
		)
		if err := rows.Scan(&rev.ID, &rev.BookID, &rev.UserID, &author.FirstName, &author.Email, &rev.Rating, &rev.Body, &rev.CreatedAt); err != nil {
			return nil, err
		}
		rev.Reviewer = author.DisplayName()
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *Repository) Create(ctx context.Context, rev domain.Review) (domain.Review, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (book_id, user_id, rating, body)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at
	`, rev.BookID, rev.UserID, rev.Rating, rev.Body).Scan(&rev.ID, &rev.CreatedAt)
	if err != nil {
		return domain.Review{}, err
	}
	return rev, nil
}
