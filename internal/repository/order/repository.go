package order

import (
	"context"

	"monsavonvert/internal/domain"
)

// Repository stores pending-order snapshots. Rows double as the outbox for the
// order-events relay: a row stays "unrelayed" until its event has been
// published downstream.
type Repository interface {
	Create(ctx context.Context, o domain.PendingOrder) error
	GetByID(ctx context.Context, id string) (*domain.PendingOrder, error)
	GetUnrelayed(ctx context.Context, limit int) ([]domain.PendingOrder, error)
	MarkRelayed(ctx context.Context, id string) error
}
