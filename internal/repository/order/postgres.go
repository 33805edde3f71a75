package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin checkout tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
INSERT INTO orders (user_id, total_price_cents, payment_status)
VALUES ($1, $2, $3)
RETURNING id, user_id, total_price_cents, payment_status, created_at
`
	var out domain.Order
	if err := tx.QueryRow(ctx, insertOrder, in.UserID, in.TotalPriceCents, domain.StatusPending).Scan(
		&out.ID,
		&out.UserID,
		&out.TotalPriceCents,
		&out.PaymentStatus,
		&out.CreatedAt,
	); err != nil {
		r.logger.Printf("order repo: insert order user_id=%d error=%v", in.UserID, err)
		return nil, fmt.Errorf("insert order: %w", err)
	}

	const insertItem = `
INSERT INTO order_items (order_id, product_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4)
`
	for _, item := range in.Items {
		if _, err := tx.Exec(ctx, insertItem, out.ID, item.ProductID, item.Quantity, item.UnitPriceCents); err != nil {
			r.logger.Printf("order repo: insert item order_id=%d product_id=%d error=%v", out.ID, item.ProductID, err)
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit checkout tx: %w", err)
	}
	r.logger.Printf("order repo: created order id=%d user_id=%d total_cents=%d items=%d", out.ID, in.UserID, in.TotalPriceCents, len(in.Items))
	return &out, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) ([]domain.OrderSummary, error) {
	const q = `
SELECT o.id,
       o.total_price_cents,
       o.payment_status,
       o.created_at,
       COUNT(oi.id) AS total_items
FROM orders o
LEFT JOIN order_items oi ON o.id = oi.order_id
WHERE o.user_id = $1
GROUP BY o.id
ORDER BY o.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("order repo: list user_id=%d error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.OrderSummary
	for rows.Next() {
		var s domain.OrderSummary
		if err := rows.Scan(&s.OrderID, &s.TotalPriceCents, &s.PaymentStatus, &s.CreatedAt, &s.TotalItems); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("order repo: list rows user_id=%d error=%v", userID, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetDetail(ctx context.Context, orderID int64) (*domain.OrderDetail, error) {
	const headerQuery = `
SELECT o.id, o.user_id, o.total_price_cents, o.payment_status, o.created_at, u.email, u.name
FROM orders o
JOIN users u ON u.id = o.user_id
WHERE o.id = $1
`
	var d domain.OrderDetail
	err := r.pool.QueryRow(ctx, headerQuery, orderID).Scan(
		&d.ID,
		&d.UserID,
		&d.TotalPriceCents,
		&d.PaymentStatus,
		&d.CreatedAt,
		&d.UserEmail,
		&d.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: detail id=%d error=%v", orderID, err)
		return nil, err
	}

	const itemsQuery = `
SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price_cents, COALESCE(p.name, '')
FROM order_items oi
LEFT JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = $1
ORDER BY oi.id ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, orderID)
	if err != nil {
		r.logger.Printf("order repo: detail items id=%d error=%v", orderID, err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPriceCents, &item.ProductName); err != nil {
			return nil, err
		}
		d.Items = append(d.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.AdminOrder, error) {
	const q = `
SELECT o.id, COALESCE(u.name, ''), o.total_price_cents, o.payment_status, o.created_at
FROM orders o
LEFT JOIN users u ON u.id = o.user_id
ORDER BY o.created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("order repo: list all error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.AdminOrder
	for rows.Next() {
		var o domain.AdminOrder
		if err := rows.Scan(&o.ID, &o.Username, &o.TotalPriceCents, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Advance(ctx context.Context, orderID int64) (domain.PaymentStatus, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", fmt.Errorf("begin advance tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var current domain.PaymentStatus
	err = tx.QueryRow(ctx, `SELECT payment_status FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		r.logger.Printf("order repo: advance id=%d error=%v", orderID, err)
		return "", err
	}

	next, err := current.Next()
	if err != nil {
		return "", err
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET payment_status = $1 WHERE id = $2`, next, orderID); err != nil {
		r.logger.Printf("order repo: advance update id=%d error=%v", orderID, err)
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit advance tx: %w", err)
	}
	r.logger.Printf("order repo: advanced id=%d %s -> %s", orderID, current, next)
	return next, nil
}
