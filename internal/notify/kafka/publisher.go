package kafka

import (
	"context"
	"encoding/json"

	"github.com/focochat/transfer-ledger/internal/models/events"
	"github.com/focochat/transfer-ledger/internal/notify"
	"github.com/segmentio/kafka-go"
)

// Publisher emits TransferCompleted events to a Kafka topic. Downstream
// consumers (email delivery, audit) subscribe to the topic; the engine only
// cares that publishing is best-effort.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Publisher) Notify(ctx context.Context, event events.TransferCompleted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ToAccount.String()),
		Value: data,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ notify.Notifier = (*Publisher)(nil)
