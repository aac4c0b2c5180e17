package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"monsavonvert/internal/domain"
)

type stubSource struct {
	pending  []domain.PendingOrder
	fetchErr error
	relayed  []string
	markErr  error
}

func (s *stubSource) GetUnrelayed(_ context.Context, limit int) ([]domain.PendingOrder, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if len(s.pending) > limit {
		return s.pending[:limit], nil
	}
	return s.pending, nil
}

func (s *stubSource) MarkRelayed(_ context.Context, id string) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.relayed = append(s.relayed, id)
	return nil
}

type stubWriter struct {
	messages []kafka.Message
	err      error
}

func (w *stubWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func pendingOrder(id string) domain.PendingOrder {
	return domain.PendingOrder{
		ID:             id,
		SessionID:      "sess",
		ShippingMethod: domain.ShippingStandard,
		TotalCents:     2995,
		CreatedAt:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func newTestRelay(source *stubSource, writer *stubWriter) *Relay {
	return &Relay{
		orders: source,
		writer: writer,
		tick:   time.Second,
		batch:  100,
		logger: log.New(io.Discard, "", 0),
	}
}

func TestRelayPublishesAndMarks(t *testing.T) {
	source := &stubSource{pending: []domain.PendingOrder{pendingOrder("o-1"), pendingOrder("o-2")}}
	writer := &stubWriter{}
	relay := newTestRelay(source, writer)

	relay.relayPending(context.Background())

	if len(writer.messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(writer.messages))
	}
	if string(writer.messages[0].Key) != "o-1" {
		t.Fatalf("messages must be keyed by order id, got %q", writer.messages[0].Key)
	}
	var decoded domain.PendingOrder
	if err := json.Unmarshal(writer.messages[0].Value, &decoded); err != nil {
		t.Fatalf("message payload must be the order JSON: %v", err)
	}
	if decoded.ID != "o-1" || decoded.TotalCents != 2995 {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
	if len(source.relayed) != 2 {
		t.Fatalf("expected both orders marked, got %v", source.relayed)
	}
}

func TestRelayKeepsRowOnPublishFailure(t *testing.T) {
	source := &stubSource{pending: []domain.PendingOrder{pendingOrder("o-1")}}
	writer := &stubWriter{err: errors.New("broker down")}
	relay := newTestRelay(source, writer)

	relay.relayPending(context.Background())
	if len(source.relayed) != 0 {
		t.Fatalf("a failed publish must leave the row unmarked, got %v", source.relayed)
	}

	// The next tick retries the same row once the broker recovers.
	writer.err = nil
	relay.relayPending(context.Background())
	if len(source.relayed) != 1 || source.relayed[0] != "o-1" {
		t.Fatalf("expected retry to mark o-1, got %v", source.relayed)
	}
}

func TestRelayFetchErrorOnlyLogs(t *testing.T) {
	source := &stubSource{fetchErr: errors.New("db down")}
	writer := &stubWriter{}
	relay := newTestRelay(source, writer)

	relay.relayPending(context.Background())
	if len(writer.messages) != 0 {
		t.Fatalf("nothing may be published when the fetch fails")
	}
}

func TestRelayRunStopsOnCancel(t *testing.T) {
	source := &stubSource{}
	relay := newTestRelay(source, &stubWriter{})
	relay.tick = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		relay.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop on context cancellation")
	}
}
