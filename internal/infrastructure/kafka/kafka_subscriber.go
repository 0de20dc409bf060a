package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	defaultHandlerBackoff = time.Second
	defaultMaxBackoff     = 30 * time.Second
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type DefaultKafkaSubscriber struct {
	brokers []string
	// HandlerBackoff is the first pause before a failed message is handled
	// again; it doubles up to MaxBackoff.
	HandlerBackoff time.Duration
	MaxBackoff     time.Duration

	newReader func(topic, groupID string) messageReader
}

func NewDefaultKafkaSubscriber(brokers []string) *DefaultKafkaSubscriber {
	k := &DefaultKafkaSubscriber{
		brokers:        brokers,
		HandlerBackoff: defaultHandlerBackoff,
		MaxBackoff:     defaultMaxBackoff,
	}
	k.newReader = func(topic, groupID string) messageReader {
		return kafka.NewReader(kafka.ReaderConfig{
			Brokers: k.brokers,
			Topic:   topic,
			GroupID: groupID,
		})
	}
	return k
}

// Consume fetches messages one at a time and commits each offset only after
// handle succeeded. A failing message is retried in place, so the partition
// does not move past it.
func (k *DefaultKafkaSubscriber) Consume(ctx context.Context, topic, groupID string, handle domain.MessageHandler) error {
	reader := k.newReader(topic, groupID)
	defer reader.Close()

	for {
		m, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch from %s: %w", topic, err)
		}

		if !k.handleUntilDone(ctx, topic, m, handle) {
			return nil
		}

		if err := reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("commit %s offset %d: %w", topic, m.Offset, err)
		}
	}
}

// handleUntilDone reports false when ctx ended before handle succeeded.
func (k *DefaultKafkaSubscriber) handleUntilDone(ctx context.Context, topic string, m kafka.Message, handle domain.MessageHandler) bool {
	backoff := k.HandlerBackoff
	if backoff <= 0 {
		backoff = defaultHandlerBackoff
	}
	for attempt := 1; ; attempt++ {
		err := handle(ctx, domain.Message{Key: m.Key, Value: m.Value})
		if err == nil {
			return true
		}
		slog.Warn("kafka message handling failed",
			"topic", topic,
			"partition", m.Partition,
			"offset", m.Offset,
			"attempt", attempt,
			"retry_in", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(backoff):
		}
		backoff = NextBackoff(backoff, k.MaxBackoff)
	}
}

// NextBackoff doubles cur, capped at max (30s when max is unset).
func NextBackoff(cur, max time.Duration) time.Duration {
	if max <= 0 {
		max = defaultMaxBackoff
	}
	next := cur * 2
	if next > max {
		return max
	}
	return next
}
