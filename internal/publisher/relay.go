// Package publisher relays persisted pending orders to the orders topic so
// downstream confirmation/fulfillment consumers see every handoff, even when
// the process restarts between persisting and publishing.
package publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"monsavonvert/internal/domain"
)

const Topic = "orders.pending"

type orderSource interface {
	GetUnrelayed(ctx context.Context, limit int) ([]domain.PendingOrder, error)
	MarkRelayed(ctx context.Context, id string) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Relay polls unrelayed pending orders and publishes them. A row is marked
// only after its message was written, so a failed publish is retried on the
// next tick.
type Relay struct {
	orders orderSource
	writer messageWriter
	tick   time.Duration
	batch  int
	logger *log.Logger
}

func New(orders orderSource, logger *log.Logger, brokers ...string) *Relay {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Relay{
		orders: orders,
		writer: w,
		tick:   time.Second,
		batch:  100,
		logger: logger,
	}
}

// Run polls until the context is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.relayPending(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Relay) relayPending(ctx context.Context) {
	orders, err := r.orders.GetUnrelayed(ctx, r.batch)
	if err != nil {
		r.logger.Printf("fetch unrelayed orders: %v", err)
		return
	}

	for _, o := range orders {
		payload, err := json.Marshal(o)
		if err != nil {
			r.logger.Printf("marshal pending order %s: %v", o.ID, err)
			continue
		}
		msg := kafka.Message{
			// Keyed by order ID so replays for one order stay ordered.
			Key:   []byte(o.ID),
			Value: payload,
		}
		if err := r.writer.WriteMessages(ctx, msg); err != nil {
			r.logger.Printf("publish pending order %s: %v", o.ID, err)
			continue
		}
		if err := r.orders.MarkRelayed(ctx, o.ID); err != nil {
			r.logger.Printf("mark pending order %s relayed: %v", o.ID, err)
		}
	}
}
