package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pagebound/bookstore/internal/cart/domain"
	userdomain "github.com/pagebound/bookstore/internal/user/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) GetOrCreate(ctx context.Context, userID int64) (domain.Cart, error) {
	// Lazy creation: racing callers both hit the unique (user_id) index and
	// converge on the same row.
	_, err := r.pool.Exec(ctx, `INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.Cart{}, userdomain.ErrUserNotFound
		}
		return domain.Cart{}, err
	}

	var cart domain.Cart
	err = r.pool.QueryRow(ctx, `SELECT id, user_id FROM carts WHERE user_id=$1`, userID).
		Scan(&cart.ID, &cart.UserID)
	if err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (r *Repository) Lines(ctx context.Context, cartID int64) ([]domain.Line, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ci.book_id, b.title, b.author, b.price, ci.quantity
		FROM cart_items ci
		JOIN books b ON b.id = ci.book_id
		WHERE ci.cart_id = $1
		ORDER BY ci.book_id
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.Line{}
	for rows.Next() {
		var l domain.Line
		if err := rows.Scan(&l.BookID, &l.Title, &l.Author, &l.Price, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *Repository) MergeLine(ctx context.Context, cartID, bookID int64, qty int) error {
	// Single-statement read-modify-write so concurrent adds to the same
	// line cannot lose updates.
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cart_items (cart_id, book_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, book_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`, cartID, bookID, qty)
	return err
}

func (r *Repository) SetLineQuantity(ctx context.Context, cartID, bookID int64, qty int) error {
	ct, err := r.pool.Exec(ctx, `UPDATE cart_items SET quantity=$3 WHERE cart_id=$1 AND book_id=$2`, cartID, bookID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrLineNotFound
	}
	return nil
}

func (r *Repository) DeleteLine(ctx context.Context, cartID, bookID int64) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1 AND book_id=$2`, cartID, bookID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrLineNotFound
	}
	return nil
}

func (r *Repository) Clear(ctx context.Context, cartID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID)
	return err
}
