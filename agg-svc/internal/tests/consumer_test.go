package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"resort-concierge/agg-svc/internal/domain"
	"resort-concierge/agg-svc/internal/mocks"
	"resort-concierge/agg-svc/internal/service"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func placedEvent() domain.OrderPlacedEvent {
	return domain.OrderPlacedEvent{
		Type:        domain.EventOrderPlaced,
		OrderNumber: "ORD-TEST-0001",
		VenueID:     uuid.New(),
		Items: []domain.EventItem{
			{MenuItemID: uuid.New(), Quantity: 2},
			{MenuItemID: uuid.New(), Quantity: 1},
		},
		Timestamp: time.Now(),
	}
}

func TestConsumer_Process(t *testing.T) {
	ctx := context.Background()
	event := placedEvent()

	tests := []struct {
		name           string
		event          domain.OrderPlacedEvent
		setupMockStore func(*mocks.StoreInterface)
		wantErr        bool
	}{
		{
			name:  "success",
			event: event,
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordOrder", ctx, event).Return(nil).Once()
			},
		},
		{
			name:  "store error",
			event: event,
			setupMockStore: func(mockStore *mocks.StoreInterface) {
				mockStore.On("RecordOrder", ctx, event).Return(errors.New("redis error")).Once()
			},
			wantErr: true,
		},
		{
			name:           "other event type",
			event:          domain.OrderPlacedEvent{Type: "order_cancelled", Items: event.Items},
			setupMockStore: func(mockStore *mocks.StoreInterface) {},
		},
		{
			name:           "no items",
			event:          domain.OrderPlacedEvent{Type: domain.EventOrderPlaced},
			setupMockStore: func(mockStore *mocks.StoreInterface) {},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)

			consumer := service.NewConsumer(nil, mockStore, logger.WithField("service", "test"))
			err := consumer.Process(ctx, testCase.event)

			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConsumer_StartCommitsEveryMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger, hook := test.NewNullLogger()
	reader := mocks.NewMessageReader(t)
	store := mocks.NewStoreInterface(t)

	event := placedEvent()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	good := kafka.Message{Offset: 1, Value: payload}
	garbage := kafka.Message{Offset: 2, Value: []byte("not json")}

	reader.On("FetchMessage", ctx).Return(good, nil).Once()
	reader.On("FetchMessage", ctx).Return(garbage, nil).Once()
	reader.On("FetchMessage", ctx).Run(func(mock.Arguments) { cancel() }).Return(kafka.Message{}, context.Canceled).Once()
	reader.On("CommitMessages", ctx, good).Return(nil).Once()
	reader.On("CommitMessages", ctx, garbage).Return(nil).Once()
	store.On("RecordOrder", ctx, mock.MatchedBy(func(e domain.OrderPlacedEvent) bool {
		return e.OrderNumber == event.OrderNumber && len(e.Items) == 2
	})).Return(nil).Once()

	done := make(chan struct{})
	go func() {
		service.NewConsumer(reader, store, logger.WithField("service", "test")).Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not stop after cancel")
	}

	warned := false
	for _, entry := range hook.AllEntries() {
		if entry.Message == "Error unmarshaling message" {
			warned = true
		}
	}
	assert.True(t, warned)
}
