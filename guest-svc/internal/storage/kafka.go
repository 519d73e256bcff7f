package storage

import (
	"context"
	"encoding/json"

	"resort-concierge/guest-svc/internal/domain"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// PublishOrderPlaced keys messages by venue so one venue's events stay ordered.
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, event domain.OrderPlacedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "encode order event")
	}
	return errors.Wrap(p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.VenueID.String()),
		Value: payload,
	}), "publish order event")
}
