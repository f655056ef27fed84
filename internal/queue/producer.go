package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

// Producer publishes summary lifecycle events for downstream consumers
// (notification fan-out, analytics). Publishing is best effort; callers
// must not fail a request over it.
type Producer interface {
	Publish(ctx context.Context, evt SummaryGeneratedEvent) error
	Close() error
}

// NewRedisProducer publishes events onto a Redis Stream. A nil logger falls
// back to slog.Default.
func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{client: client, stream: stream, logger: logger}
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func (p *redisProducer) Publish(ctx context.Context, evt SummaryGeneratedEvent) error {
	var traceID string
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		traceID = sc.TraceID().String()
	}

	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: evt.streamValues(traceID),
	}).Err()
	if err != nil {
		return fmt.Errorf("publish summary event: %w", err)
	}

	p.logger.InfoContext(ctx, "published summary event",
		"project_id", evt.ProjectID, "generation_id", evt.GenerationID)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

// NopProducer satisfies Producer when Redis is not configured.
type NopProducer struct{}

func (NopProducer) Publish(context.Context, SummaryGeneratedEvent) error { return nil }

func (NopProducer) Close() error { return nil }
