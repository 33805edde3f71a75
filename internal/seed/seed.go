package seed

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name        string
	Description string
	PriceCents  int64
	Category    string
	SerialCode  string
	Stock       int
	ImageURL    string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool, "Store Admin", "admin@storefront.local", "ChangeMe123"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	products := []productSeed{
		{
			Name:        "Mechanical Keyboard",
			Description: "Hot-swappable switches, PBT caps",
			PriceCents:  4500,
			Category:    "electronics",
			SerialCode:  "ELEC-001",
			Stock:       12,
			ImageURL:    "https://images.storefront.local/keyboard.jpg",
		},
		{
			Name:        "27-inch Monitor",
			Description: "1440p IPS panel",
			PriceCents:  12000,
			Category:    "electronics",
			SerialCode:  "ELEC-002",
			Stock:       6,
			ImageURL:    "https://images.storefront.local/monitor.jpg",
		},
		{
			Name:        "Ceramic Mug",
			Description: "Holds 350ml of coffee",
			PriceCents:  1299,
			Category:    "kitchen",
			SerialCode:  "KITC-001",
			Stock:       40,
			ImageURL:    "https://images.storefront.local/mug.jpg",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.SerialCode, err)
		}
	}

	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, name, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (name, email, password_hash, role)
VALUES ($1, $2, $3, 'admin')
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, name, email, string(hash))
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, price_cents, category, serial_code, stock, image_url)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (serial_code) DO UPDATE SET
    name        = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    category    = EXCLUDED.category,
    stock       = EXCLUDED.stock,
    image_url   = EXCLUDED.image_url,
    available   = TRUE
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.PriceCents, p.Category, p.SerialCode, p.Stock, p.ImageURL)
	return err
}
