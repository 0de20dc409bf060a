package domain

import "context"

type Message struct {
	Key   []byte
	Value []byte
}

type PublisherPort interface {
	Publish(ctx context.Context, topic string, msgs ...Message) error
}

// MessageHandler returns an error only for failures worth retrying; the
// message is acknowledged once it returns nil.
type MessageHandler func(ctx context.Context, msg Message) error

type SubscriberPort interface {
	// Consume blocks until ctx is done (nil) or the underlying reader fails.
	Consume(ctx context.Context, topic, groupID string, handle MessageHandler) error
}
