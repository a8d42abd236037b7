package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/pagebound/bookstore/internal/order/domain"
	userdomain "github.com/pagebound/bookstore/internal/user/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// Checkout executes the four checkout phases inside one transaction.
// The cart join locks the book rows (ordered by id to keep lock acquisition
// deterministic), so two checkouts touching the same book serialize on
// validate-then-decrement and can never jointly oversell.
func (r *Repository) Checkout(ctx context.Context, userID int64, orderNumber string, addr domain.ShippingAddress) (domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Order{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var userExists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id=$1)`, userID).Scan(&userExists); err != nil {
		return domain.Order{}, err
	}
	if !userExists {
		return domain.Order{}, userdomain.ErrUserNotFound
	}

	var cartID int64
	err = tx.QueryRow(ctx, `SELECT id FROM carts WHERE user_id=$1`, userID).Scan(&cartID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrEmptyCart
	}
	if err != nil {
		return domain.Order{}, err
	}

	lines, err := r.lockCartLines(ctx, tx, cartID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(lines) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	for _, l := range lines {
		if l.stock < l.quantity {
			return domain.Order{}, &domain.InsufficientStockError{
				BookID:    l.bookID,
				Title:     l.title,
				Available: l.stock,
				Requested: l.quantity,
			}
		}
	}

	priced := make([]domain.PricedLine, len(lines))
	for i, l := range lines {
		priced[i] = domain.PricedLine{UnitPrice: l.price, Quantity: l.quantity}
	}
	totals := domain.Price(priced)

	order := domain.Order{
		Number:      orderNumber,
		UserID:      userID,
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		ShippingFee: totals.ShippingFee,
		Total:       totals.Total,
		Status:      domain.StatusPending,
		Ship:        addr,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (order_number, user_id, subtotal, tax, shipping_fee, total, status,
			ship_name, ship_address1, ship_address2, ship_city, ship_region, ship_postal, ship_country)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING id, placed_at
	`, order.Number, order.UserID, order.Subtotal, order.Tax, order.ShippingFee, order.Total, order.Status,
		addr.Name, addr.Address1, addr.Address2, addr.City, addr.Region, addr.Postal, addr.Country,
	).Scan(&order.ID, &order.PlacedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.Order{}, domain.ErrOrderNumberTaken
		}
		return domain.Order{}, err
	}

	batch := &pgx.Batch{}
	for _, l := range lines {
		lineTotal := l.price.Mul(decimal.NewFromInt(int64(l.quantity)))
		batch.Queue(`INSERT INTO order_items (order_id, book_id, quantity, unit_price, line_total) VALUES ($1,$2,$3,$4,$5)`,
			order.ID, l.bookID, l.quantity, l.price, lineTotal)
		batch.Queue(`UPDATE books SET stock_qty = stock_qty - $2 WHERE id = $1`, l.bookID, l.quantity)

		order.Items = append(order.Items, domain.Item{
			BookID:    l.bookID,
			Title:     l.title,
			Quantity:  l.quantity,
			UnitPrice: l.price,
			LineTotal: lineTotal,
		})
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return domain.Order{}, err
	}

	if err := r.queueOrderPlaced(ctx, tx, order); err != nil {
		return domain.Order{}, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id=$1`, cartID); err != nil {
		return domain.Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

type cartLine struct {
	bookID   int64
	title    string
	price    decimal.Decimal
	quantity int
	stock    int
}

func (r *Repository) lockCartLines(ctx context.Context, tx pgx.Tx, cartID int64) ([]cartLine, error) {
	rows, err := tx.Query(ctx, `
		SELECT b.id, b.title, b.price, b.stock_qty, ci.quantity
		FROM cart_items ci
		JOIN books b ON b.id = ci.book_id
		WHERE ci.cart_id = $1
		ORDER BY b.id
		FOR UPDATE OF b
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []cartLine
	for rows.Next() {
		var l cartLine
		if err := rows.Scan(&l.bookID, &l.title, &l.price, &l.stock, &l.quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// queueOrderPlaced writes the event to the outbox inside the checkout
// transaction; the relay publishes it after commit.
func (r *Repository) queueOrderPlaced(ctx context.Context, tx pgx.Tx, order domain.Order) error {
	event := domain.OrderPlaced{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		UserID:      order.UserID,
		Total:       order.Total,
		PlacedAt:    order.PlacedAt,
	}
	for _, it := range order.Items {
		event.Items = append(event.Items, domain.OrderPlacedItem{BookID: it.BookID, Quantity: it.Quantity})
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	_, err = tx.Exec(ctx, `
		INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, headers, traceparent, status)
		VALUES ('order', $1, 'OrderPlaced', $2, $3, $4, 'pending')
	`, strconv.FormatInt(order.ID, 10), payload, map[string]string{}, carrier["traceparent"])
	return err
}

func (r *Repository) HistoryByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_number, user_id, subtotal, tax, shipping_fee, total, status, placed_at
		FROM orders
		WHERE user_id = $1
		ORDER BY placed_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	index := map[int64]int{}
	var ids []int64
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Number, &o.UserID, &o.Subtotal, &o.Tax, &o.ShippingFee, &o.Total, &o.Status, &o.PlacedAt); err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		ids = append(ids, o.ID)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.book_id, b.title, oi.quantity, oi.unit_price, oi.line_total
		FROM order_items oi
		JOIN books b ON b.id = oi.book_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			item    domain.Item
			orderID int64
		)
		if err := itemRows.Scan(&item.ID, &orderID, &item.BookID, &item.Title, &item.Quantity, &item.UnitPrice, &item.LineTotal); err != nil {
			return nil, err
		}
		i := index[orderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	return orders, itemRows.Err()
}
