package kafka

import (
	"context"
	"time"

	"go-leavehub/internal/shared/jsonstore"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// OutboxEvent is a durably recorded domain event awaiting publication. Events
// are appended by services alongside their own state change and drained by the
// producer worker; a failed publish is retried with a linear backoff.
type OutboxEvent struct {
	ID            string    `json:"id"`
	RequestID     string    `json:"request_id,omitempty"`
	AggregateType string    `json:"aggregate_type"`
	AggregateID   string    `json:"aggregate_id"`
	EventType     string    `json:"event_type"`
	Topic         string    `json:"topic"`
	Payload       []byte    `json:"payload"`
	Status        string    `json:"status"`
	RetryCount    int       `json:"retry_count"`
	NextRetryAt   time.Time `json:"next_retry_at"`
	CreatedAt     time.Time `json:"created_at"`
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	Append(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	col *jsonstore.Collection[OutboxEvent]
}

func NewOutboxRepository(col *jsonstore.Collection[OutboxEvent]) OutboxRepository {
	return &outboxRepository{col: col}
}

func (r *outboxRepository) Append(ctx context.Context, event OutboxEvent) error {
	if event.Status == "" {
		event.Status = OutboxStatusPending
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return r.col.Mutate(func(items []OutboxEvent) ([]OutboxEvent, error) {
		return append(items, event), nil
	})
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	now := time.Now().UTC()
	events := make([]OutboxEvent, 0, limit)
	for _, e := range r.col.Snapshot() {
		if e.Status != OutboxStatusPending && e.Status != OutboxStatusFailed {
			continue
		}
		if !e.NextRetryAt.IsZero() && e.NextRetryAt.After(now) {
			continue
		}
		events = append(events, e)
		if len(events) == limit {
			break
		}
	}
	return events, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	return r.col.Mutate(func(items []OutboxEvent) ([]OutboxEvent, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].Status = OutboxStatusSent
				break
			}
		}
		return items, nil
	})
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return r.col.Mutate(func(items []OutboxEvent) ([]OutboxEvent, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].Status = OutboxStatusFailed
				items[i].RetryCount++
				items[i].NextRetryAt = time.Now().UTC().Add(time.Duration(items[i].RetryCount) * 30 * time.Second)
				break
			}
		}
		return items, nil
	})
}
