package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/BruksfildServices01/mesa-scheduler/internal/audit"
	"github.com/BruksfildServices01/mesa-scheduler/internal/errs"
)

// Message é o envelope publicado no tópico; consumidores em tempo real
// (painel do salão) usam entity/action para rotear.
type Message struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata"`
	Data       any               `json:"data,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica eventos de reserva. Implementa audit.Sink.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return newPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}, topic)
}

func newPublisher(w messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic}
}

func (p *KafkaPublisher) Write(ctx context.Context, ev audit.Event) error {
	msg := Message{
		Entity:     ev.Entity,
		Action:     ev.Action,
		Topic:      p.topic,
		Metadata:   map[string]string{"restaurantId": strconv.FormatUint(uint64(ev.RestaurantID), 10)},
		Data:       ev.Metadata,
		OccurredAt: ev.OccurredAt,
	}
	if ev.EntityID != nil {
		msg.ResourceID = strconv.FormatUint(uint64(*ev.EntityID), 10)
	}
	if ev.Actor != "" {
		msg.Metadata["actor"] = ev.Actor
	}
	if ev.CorrelationID != "" {
		msg.Metadata["correlationId"] = ev.CorrelationID
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return errs.Wrap(err, "encode event")
	}

	// chave por restaurante: eventos de um restaurante ficam na mesma partição
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Metadata["restaurantId"]),
		Value: value,
	})
	return errs.Wrapf(err, "publish %s", ev.Action)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

var _ audit.Sink = (*KafkaPublisher)(nil)
