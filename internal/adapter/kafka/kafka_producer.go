package kafka

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/usecase"
)

// StatusEventProducer publishes order-status changes, keyed by order id
// so per-order ordering is preserved within a partition.
type StatusEventProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewStatusEventProducer(p sarama.SyncProducer, topic string) *StatusEventProducer {
	return &StatusEventProducer{producer: p, topic: topic}
}

func (p *StatusEventProducer) StatusChanged(_ context.Context, msg usecase.OrderStatusChangedMsg) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(msg.OrderID),
		Value: sarama.ByteEncoder(body),
	})
	return err
}

var _ usecase.OrderEvents = (*StatusEventProducer)(nil)
