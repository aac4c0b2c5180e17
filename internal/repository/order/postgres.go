package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"monsavonvert/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, o domain.PendingOrder) error {
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	const q = `
INSERT INTO pending_orders (id, session_id, customer, items, shipping_method, shipping_cents, total_cents, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err = r.pool.Exec(ctx, q,
		o.ID,
		o.SessionID,
		customer,
		items,
		string(o.ShippingMethod),
		o.ShippingCents,
		o.TotalCents,
		o.CreatedAt,
	)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.PendingOrder, error) {
	const q = `
SELECT id::text, session_id, customer, items, shipping_method, shipping_cents, total_cents, created_at
FROM pending_orders
WHERE id = $1
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) GetUnrelayed(ctx context.Context, limit int) ([]domain.PendingOrder, error) {
	const q = `
SELECT id::text, session_id, customer, items, shipping_method, shipping_cents, total_cents, created_at
FROM pending_orders
WHERE relayed_at IS NULL
ORDER BY created_at
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.PendingOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) MarkRelayed(ctx context.Context, id string) error {
	const q = `
UPDATE pending_orders
SET relayed_at = now()
WHERE id = $1 AND relayed_at IS NULL
`
	_, err := r.pool.Exec(ctx, q, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.PendingOrder, error) {
	var (
		o        domain.PendingOrder
		customer []byte
		items    []byte
		method   string
	)
	if err := row.Scan(
		&o.ID,
		&o.SessionID,
		&customer,
		&items,
		&method,
		&o.ShippingCents,
		&o.TotalCents,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(customer, &o.Customer); err != nil {
		return nil, fmt.Errorf("unmarshal customer: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	o.ShippingMethod = domain.ShippingMethod(method)
	return &o, nil
}
