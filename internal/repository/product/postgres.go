package product

import (
	"context"
	"errors"
	"io"
	"log"

	"storefront/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, name, COALESCE(description, ''), price_cents, category, COALESCE(serial_code, ''), stock, COALESCE(image_url, ''), available, created_at`

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

func (r *postgresRepo) List(ctx context.Context, includeUnavailable bool) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE available OR $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, includeUnavailable)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price_cents, category, serial_code, stock, image_url)
VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''))
RETURNING ` + productColumns + `
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, in.Name, in.Description, in.PriceCents, in.Category, in.SerialCode, in.Stock, in.ImageURL))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("product repo: create name=%q error=%v", in.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%d serial=%s", p.ID, p.SerialCode)
	return p, nil
}

func (r *postgresRepo) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Product, error) {
	const q = `
UPDATE products
SET name        = COALESCE($2, name),
    description = COALESCE($3, description),
    price_cents = COALESCE($4, price_cents),
    category    = COALESCE($5, category),
    stock       = COALESCE($6, stock),
    image_url   = COALESCE($7, image_url),
    available   = COALESCE($8, available)
WHERE id = $1
RETURNING ` + productColumns + `
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id, in.Name, in.Description, in.PriceCents, in.Category, in.Stock, in.ImageURL, in.Available))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%d error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("product repo: updated id=%d", id)
	return p, nil
}

func (r *postgresRepo) SoftDelete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE products SET available = FALSE WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: soft delete id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: soft deleted id=%d", id)
	return nil
}

func (r *postgresRepo) CountByCategory(ctx context.Context, category string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category = $1`, category).Scan(&n)
	if err != nil {
		r.logger.Printf("product repo: count category=%s error=%v", category, err)
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) UpsertBySerial(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price_cents, category, serial_code, stock, image_url)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, NULLIF($7, ''))
ON CONFLICT (serial_code) DO UPDATE SET
    name        = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    category    = EXCLUDED.category,
    stock       = EXCLUDED.stock,
    image_url   = EXCLUDED.image_url,
    available   = TRUE
RETURNING ` + productColumns + `
`
	out, err := scanProduct(r.pool.QueryRow(ctx, q, p.Name, p.Description, p.PriceCents, p.Category, p.SerialCode, p.Stock, p.ImageURL))
	if err != nil {
		r.logger.Printf("product repo: upsert serial=%s error=%v", p.SerialCode, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted serial=%s id=%d", out.SerialCode, out.ID)
	return out, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Category, &p.SerialCode, &p.Stock, &p.ImageURL, &p.Available, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
