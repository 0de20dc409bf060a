package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

type DefaultKafkaPublisher struct {
	writer *kafka.Writer
}

func NewDefaultKafkaPublisher(brokers []string) *DefaultKafkaPublisher {
	return &DefaultKafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (k *DefaultKafkaPublisher) Publish(ctx context.Context, topic string, msgs ...domain.Message) error {
	km := make([]kafka.Message, 0, len(msgs))
	for _, m := range msgs {
		km = append(km, kafka.Message{
			Key:   m.Key,
			Value: m.Value,
			Time:  time.Now(),
			Topic: topic,
		})
	}

	return k.writer.WriteMessages(ctx, km...)
}

func (k *DefaultKafkaPublisher) Close() error {
	return k.writer.Close()
}

// CommissionPublisher encodes commission events onto their topics.
type CommissionPublisher struct {
	port        domain.PublisherPort
	eventsTopic string
	alertsTopic string
}

func NewCommissionPublisher(port domain.PublisherPort, eventsTopic, alertsTopic string) *CommissionPublisher {
	return &CommissionPublisher{
		port:        port,
		eventsTopic: eventsTopic,
		alertsTopic: alertsTopic,
	}
}

func (p *CommissionPublisher) PublishCommission(ctx context.Context, event CommissionEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.port.Publish(ctx, p.eventsTopic, domain.Message{Key: []byte(event.SaleID), Value: v})
}

func (p *CommissionPublisher) PublishAlert(ctx context.Context, event CommissionAlertEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.port.Publish(ctx, p.alertsTopic, domain.Message{Key: []byte(event.SaleID), Value: v})
}
