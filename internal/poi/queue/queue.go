// Package queue feeds the POI enrichment pipeline from a Redis stream,
// adapting the teacher's stream-repository pattern (XGroupCreateMkStream
// / XReadGroup / XAck) to the raw-POI ingestion use case instead of a
// generic message envelope.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/munin-search/autocomplete/internal/poi"
)

const blockTimeout = time.Second

var _ poi.Source = (*Queue)(nil)

// Queue publishes and consumes poi.RawPoi records over a Redis stream,
// using a consumer group so multiple pipeline runners can share the
// backlog without double-processing an entry.
type Queue struct {
	client *redis.Client
	logger *zap.Logger
	stream string
}

// New builds a Queue bound to the given stream name.
func New(client *redis.Client, stream string, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{client: client, logger: logger, stream: stream}
}

// EnsureGroup creates the consumer group if it does not already exist,
// starting from new messages only ("$").
func (q *Queue) EnsureGroup(ctx context.Context, group string) error {
	err := q.client.XGroupCreateMkStream(ctx, q.stream, group, "$").Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		if isBusyGroup(err) {
			return nil
		}
		return fmt.Errorf("queue: create consumer group: %w", err)
	}
	return nil
}

func isBusyGroup(err error) bool {
	return err != nil && len(err.Error()) >= 9 && err.Error()[:9] == "BUSYGROUP"
}

// Publish serializes raw and appends it to the stream.
func (q *Queue) Publish(ctx context.Context, raw poi.RawPoi) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("queue: marshal raw poi: %w", err)
	}
	err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: map[string]interface{}{"data": string(data)},
	}).Err()
	if err != nil {
		return fmt.Errorf("queue: publish: %w", err)
	}
	return nil
}

// Consume streams raw POIs to the returned channel using group/consumer,
// acknowledging each message once it has been sent downstream. The
// channel closes when ctx is cancelled.
func (q *Queue) Consume(ctx context.Context, group, consumer string) <-chan poi.RawPoi {
	out := make(chan poi.RawPoi, 16)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			result, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{q.stream, ">"},
				Count:    10,
				Block:    blockTimeout,
			}).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				q.logger.Error("queue: read group failed", zap.String("stream", q.stream), zap.Error(err))
				continue
			}

			for _, stream := range result {
				for _, msg := range stream.Messages {
					q.deliver(ctx, group, msg, out)
				}
			}
		}
	}()

	return out
}

func (q *Queue) deliver(ctx context.Context, group string, msg redis.XMessage, out chan<- poi.RawPoi) {
	data, ok := msg.Values["data"].(string)
	if !ok {
		q.logger.Warn("queue: message missing data field", zap.String("id", msg.ID))
		return
	}

	var raw poi.RawPoi
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		q.logger.Warn("queue: undecodable message", zap.String("id", msg.ID), zap.Error(err))
		return
	}

	select {
	case out <- raw:
		if err := q.client.XAck(ctx, q.stream, group, msg.ID).Err(); err != nil {
			q.logger.Error("queue: ack failed", zap.String("id", msg.ID), zap.Error(err))
		}
	case <-ctx.Done():
	}
}
