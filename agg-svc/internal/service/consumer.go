package service

import (
	"context"
	"encoding/json"
	"time"

	"resort-concierge/agg-svc/internal/domain"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

const fetchBackoff = time.Second

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Logger *log.Entry
}

func NewConsumer(reader MessageReader, store StoreInterface, logger *log.Entry) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
		Logger: logger,
	}
}

// Start consumes until ctx is cancelled. Every fetched message is committed,
// including ones that could not be decoded or stored; those are logged and
// skipped.
func (c *Consumer) Start(ctx context.Context) {
	c.Logger.Info("Starting aggregation consumer")
	for {
		message, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.Logger.Info("Aggregation consumer stopped")
				return
			}
			c.Logger.WithError(err).Error("Error reading message")
			select {
			case <-ctx.Done():
				return
			case <-time.After(fetchBackoff):
			}
			continue
		}

		c.handle(ctx, message)

		if err := c.Reader.CommitMessages(ctx, message); err != nil && ctx.Err() == nil {
			c.Logger.WithError(err).WithField("offset", message.Offset).Error("Error committing message")
		}
	}
}

func (c *Consumer) handle(ctx context.Context, message kafka.Message) {
	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		c.Logger.WithError(err).WithField("offset", message.Offset).Warn("Error unmarshaling message")
		return
	}
	if err := c.Process(ctx, event); err != nil {
		c.Logger.WithError(err).WithField("order_number", event.OrderNumber).Error("Error recording order")
	}
}

// Process folds one event into the leaderboards. Events of other types are
// ignored.
func (c *Consumer) Process(ctx context.Context, event domain.OrderPlacedEvent) error {
	if event.Type != domain.EventOrderPlaced {
		return nil
	}
	if len(event.Items) == 0 {
		return nil
	}
	if err := c.Store.RecordOrder(ctx, event); err != nil {
		return errors.Wrapf(err, "record order %s", event.OrderNumber)
	}
	c.Logger.WithFields(log.Fields{
		"order_number": event.OrderNumber,
		"venue_id":     event.VenueID,
		"items":        len(event.Items),
	}).Debug("Order recorded")
	return nil
}
