//go:build unit

package events_test

import (
	"context"
	"errors"
	"testing"

	"warehouse-booking/internal/infra/events"
	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/config"
	eventsmock "warehouse-booking/tests/mock/events"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func outboxEvent(eventType string) sqlstore.OutboxEvent {
	return sqlstore.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: uuid.New(),
		Topic:       "warehouse.reservations",
		EventType:   eventType,
		Payload:     []byte(`{"type":"` + eventType + `"}`),
		Status:      "queued",
	}
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaPublisher_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("success: messages are keyed by aggregate", func(t *testing.T) {
		writer := eventsmock.NewMockMessageWriter(gomock.NewController(t))
		pub := events.NewPublisherWithWriter(writer)
		batch := []sqlstore.OutboxEvent{outboxEvent("reservation.created"), outboxEvent("reservation.confirmed")}

		writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
				require.Len(t, msgs, 2)
				for i, msg := range msgs {
					assert.Equal(t, batch[i].Topic, msg.Topic)
					assert.Equal(t, batch[i].AggregateID.String(), string(msg.Key))
					assert.JSONEq(t, string(batch[i].Payload), string(msg.Value))
					assert.Equal(t, batch[i].ID.String(), header(msg, "event_id"))
					assert.Equal(t, batch[i].EventType, header(msg, "event_type"))
				}
				return nil
			})

		results := pub.Publish(ctx, batch)

		assert.Equal(t, []error{nil, nil}, results)
	})

	t.Run("success: empty batch writes nothing", func(t *testing.T) {
		writer := eventsmock.NewMockMessageWriter(gomock.NewController(t))
		pub := events.NewPublisherWithWriter(writer)

		assert.Empty(t, pub.Publish(ctx, nil))
	})

	t.Run("error: per-message failures are reported individually", func(t *testing.T) {
		writer := eventsmock.NewMockMessageWriter(gomock.NewController(t))
		pub := events.NewPublisherWithWriter(writer)
		batch := []sqlstore.OutboxEvent{outboxEvent("reservation.created"), outboxEvent("reservation.updated")}

		writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).
			Return(kafka.WriteErrors{nil, kafka.LeaderNotAvailable})

		results := pub.Publish(ctx, batch)

		require.Len(t, results, 2)
		assert.NoError(t, results[0])
		assert.ErrorIs(t, results[1], kafka.LeaderNotAvailable)
	})

	t.Run("error: a batch failure fails every event", func(t *testing.T) {
		writer := eventsmock.NewMockMessageWriter(gomock.NewController(t))
		pub := events.NewPublisherWithWriter(writer)
		down := errors.New("dial tcp: connection refused")

		writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(down)

		results := pub.Publish(ctx, []sqlstore.OutboxEvent{outboxEvent("reservation.cancelled"), outboxEvent("reservation.updated")})

		for _, err := range results {
			assert.ErrorIs(t, err, down)
		}
	})
}

func TestNewKafkaPublisher(t *testing.T) {
	t.Run("error: brokers are required", func(t *testing.T) {
		_, err := events.NewKafkaPublisher(config.EventsConfig{})

		assert.Error(t, err)
	})

	t.Run("success: writer is built lazily without dialing", func(t *testing.T) {
		pub, err := events.NewKafkaPublisher(config.EventsConfig{Brokers: []string{"localhost:9092"}, Compression: "zstd"})

		require.NoError(t, err)
		assert.NoError(t, pub.Close())
	})
}
