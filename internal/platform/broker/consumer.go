package broker

import (
	"context"
	"log/slog"
	"strings"

	"github.com/segmentio/kafka-go"

	reservations "mesaYaSync/internal/modules/reservations/domain"
)

// EventSink receives decoded reservation events from the broker feed.
type EventSink func(ctx context.Context, event *reservations.Event)

// KafkaConsumer reads one topic of the backend's reservation event stream.
// It is the broker-fed alternative to the SSE feed for deployments that expose
// the mutation topics directly.
type KafkaConsumer struct {
	reader *kafka.Reader
}

func NewKafkaConsumer(brokers []string, groupID, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
	}
}

func (c *KafkaConsumer) Consume(ctx context.Context, sink EventSink) error {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("kafka read error", slog.Any("error", err))
			continue
		}

		event, err := reservations.DecodeEvent(eventNameFromTopic(m.Topic), m.Value)
		if err != nil {
			slog.Warn("dropping malformed kafka event",
				slog.String("topic", m.Topic), slog.Int64("offset", m.Offset), slog.Any("error", err))
			continue
		}
		slog.Info("kafka event consumed",
			slog.String("topic", m.Topic),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("type", string(event.Type)),
			slog.String("reservationId", event.Reservation.ID),
		)
		sink(ctx, event)
	}
}

// eventNameFromTopic maps "<prefix>.reservations.created" onto the feed event
// name "reservation_created". An unrecognized topic yields "" so the payload's
// own type field decides.
func eventNameFromTopic(topic string) string {
	parts := strings.Split(topic, ".")
	if len(parts) < 2 {
		return ""
	}
	action := strings.TrimSpace(parts[len(parts)-1])
	entity := strings.TrimSpace(parts[len(parts)-2])
	if entity != "reservations" || action == "" {
		return ""
	}
	return "reservation_" + action
}

// StartConsumers launches one consumer goroutine per topic. With no brokers
// configured it is a no-op so the SSE path can run alone.
func StartConsumers(ctx context.Context, brokers []string, groupID string, topics []string, sink EventSink) {
	if len(brokers) == 0 || len(topics) == 0 {
		return
	}
	for _, topic := range topics {
		go func(tp string) {
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			if err := consumer.Consume(ctx, sink); err != nil && ctx.Err() == nil {
				slog.Error("kafka consumer stopped", slog.String("topic", tp), slog.Any("error", err))
			}
		}(topic)
	}
}
