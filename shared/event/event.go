package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/websocket"
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func New(eventType, key string, payload any) Event {
	return Event{
		Type:       eventType,
		Key:        key,
		Payload:    payload,
		OccurredAt: timezone.Now(),
	}
}

// Publisher delivers domain events after the owning transaction committed.
// Delivery failures are logged and never reported back to the caller.
type Publisher interface {
	Publish(ctx context.Context, events ...Event)
}

type publisherImpl struct {
	cfg   *config.Config
	kafka kafka.Client
	hub   websocket.Hub
	otel  otel.Otel
}

func NewPublisher(cfg *config.Config, kafka kafka.Client, hub websocket.Hub, otel otel.Otel) Publisher {
	return &publisherImpl{
		cfg:   cfg,
		kafka: kafka,
		hub:   hub,
		otel:  otel,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, events ...Event) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()

	if len(events) == 0 {
		return
	}

	for _, evt := range events {
		scope.AddEvent(evt.Type)

		if err := p.hub.Broadcast(evt.Type, evt); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("type", evt.Type).Str("key", evt.Key).Msg("failed to broadcast event")
		}
	}

	if !p.cfg.Kafka.Enable {
		return
	}

	messages := make([]kafka.Message, len(events))
	for i, evt := range events {
		messages[i] = kafka.Message{Key: evt.Key, Value: evt}
	}

	if err := p.kafka.SendMessages(ctx, p.cfg.Kafka.Topic, messages...); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("events", len(events)).Msg("failed to publish events to kafka")
	}
}
