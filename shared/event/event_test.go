package event_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/kafka"
	kafkaMocks "hotel/infras/kafka/mocks"
	otelMocks "hotel/infras/otel/mocks"
	wsMocks "hotel/infras/websocket/mocks"
	"hotel/shared/constant"
	"hotel/shared/event"
)

func TestNew(t *testing.T) {
	evt := event.New(constant.EventBookingCreated, "booking-1", map[string]string{"id": "booking-1"})

	assert.Equal(t, constant.EventBookingCreated, evt.Type)
	assert.Equal(t, "booking-1", evt.Key)
	assert.False(t, evt.OccurredAt.IsZero())
}

func TestPublisher_Publish(t *testing.T) {
	created := event.New(constant.EventBookingCreated, "booking-1", nil)
	changed := event.New(constant.EventRoomStateChanged, "101", nil)

	tests := []struct {
		name         string
		kafkaEnabled bool
		events       []event.Event
		setupMock    func(client *kafkaMocks.MockClient, hub *wsMocks.MockHub)
	}{
		{
			name:         "broadcasts and sends to kafka",
			kafkaEnabled: true,
			events:       []event.Event{created, changed},
			setupMock: func(client *kafkaMocks.MockClient, hub *wsMocks.MockHub) {
				hub.EXPECT().Broadcast(constant.EventBookingCreated, created).Return(nil)
				hub.EXPECT().Broadcast(constant.EventRoomStateChanged, changed).Return(nil)
				client.EXPECT().
					SendMessages(gomock.Any(), "hotel-events", kafka.Message{Key: "booking-1", Value: created}, kafka.Message{Key: "101", Value: changed}).
					Return(nil)
			},
		},
		{
			name:   "kafka disabled only broadcasts",
			events: []event.Event{created},
			setupMock: func(client *kafkaMocks.MockClient, hub *wsMocks.MockHub) {
				hub.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Return(nil)
				client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
		},
		{
			name:         "delivery failures are swallowed",
			kafkaEnabled: true,
			events:       []event.Event{created},
			setupMock: func(client *kafkaMocks.MockClient, hub *wsMocks.MockHub) {
				hub.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Return(errors.New("marshal error"))
				client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
			},
		},
		{
			name:         "no events",
			kafkaEnabled: true,
			setupMock:    func(_ *kafkaMocks.MockClient, _ *wsMocks.MockHub) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := kafkaMocks.NewMockClient(ctrl)
			hub := wsMocks.NewMockHub(ctrl)
			tt.setupMock(client, hub)

			cfg := &config.Config{}
			cfg.Kafka.Enable = tt.kafkaEnabled
			cfg.Kafka.Topic = "hotel-events"

			publisher := event.NewPublisher(cfg, client, hub, otelMocks.NewOtel())

			assert.NotPanics(t, func() {
				publisher.Publish(context.Background(), tt.events...)
			})
		})
	}
}
