package events

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"warehouse-booking/internal/infra/sqlstore"
	"warehouse-booking/internal/pkg/config"

	"github.com/cockroachdb/errors"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

//go:generate mockgen -source=publisher.go -destination=../../../tests/mock/events/publisher.go -package=eventsmock

const (
	headerEventID   = "event_id"
	headerEventType = "event_type"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(cfg config.EventsConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("at least one kafka broker is required")
	}

	// Topic is left unset on the writer; every outbox row carries its own.
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           requiredAcks(cfg.RequiredAcks),
		Compression:            compression(cfg.Compression),
		MaxAttempts:            cfg.MaxAttempts,
		BatchTimeout:           cfg.BatchTimeout,
		AllowAutoTopicCreation: false,
		Logger: kafka.LoggerFunc(func(msg string, args ...any) {
			slog.Debug("kafka writer", "detail", strings.TrimSpace(fmt.Sprintf(msg, args...)))
		}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			slog.Error("kafka writer", "detail", strings.TrimSpace(fmt.Sprintf(msg, args...)))
		}),
	}
	return NewPublisherWithWriter(writer), nil
}

func NewPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish writes the events in order. The returned slice has one entry per
// event: nil when it was written, its error otherwise.
func (p *KafkaPublisher) Publish(ctx context.Context, events []sqlstore.OutboxEvent) []error {
	results := make([]error, len(events))
	if len(events) == 0 {
		return results
	}

	msgs := make([]kafka.Message, len(events))
	for i, ev := range events {
		msgs[i] = toMessage(ev)
	}

	err := p.writer.WriteMessages(ctx, msgs...)
	if err == nil {
		return results
	}

	var writeErrs kafka.WriteErrors
	if errors.As(err, &writeErrs) && len(writeErrs) == len(events) {
		for i := range writeErrs {
			results[i] = writeErrs[i]
		}
		return results
	}
	for i := range results {
		results[i] = err
	}
	return results
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// toMessage keys by aggregate so one unit's events land on one partition.
func toMessage(ev sqlstore.OutboxEvent) kafka.Message {
	return kafka.Message{
		Topic: ev.Topic,
		Key:   []byte(ev.AggregateID.String()),
		Value: ev.Payload,
		Headers: []kafka.Header{
			{Key: headerEventID, Value: []byte(ev.ID.String())},
			{Key: headerEventType, Value: []byte(ev.EventType)},
		},
	}
}

func compression(name string) compress.Compression {
	switch strings.ToLower(name) {
	case "gzip":
		return compress.Gzip
	case "lz4":
		return compress.Lz4
	case "zstd":
		return compress.Zstd
	case "none", "":
		return compress.None
	default:
		return compress.Snappy
	}
}

func requiredAcks(name string) kafka.RequiredAcks {
	switch strings.ToLower(name) {
	case "none", "0":
		return kafka.RequireNone
	case "one", "1":
		return kafka.RequireOne
	default:
		return kafka.RequireAll
	}
}
