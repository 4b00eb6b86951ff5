package eventpublisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/fleetpay/walletledger/internal/domain"
)

type stubKafkaWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (s *stubKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msgs...)
	return nil
}

func (s *stubKafkaWriter) Close() error {
	s.closed = true
	return nil
}

func TestKafkaPublisherPublish(t *testing.T) {
	writer := &stubKafkaWriter{}
	pub := &KafkaPublisher{writer: writer}

	event := &domain.OutboxEvent{
		ID:            "evt-1",
		AggregateID:   "holder-1",
		AggregateType: "holder",
		EventType:     "holder.created",
		Payload:       map[string]any{"holder_id": "holder-1"},
		CreatedAt:     time.Now(),
	}

	if err := pub.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if len(writer.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(writer.messages))
	}
	msg := writer.messages[0]
	if string(msg.Key) != "holder-1" {
		t.Errorf("expected key holder-1, got %s", msg.Key)
	}

	var envelope kafkaEnvelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		t.Fatalf("failed to unmarshal message value: %v", err)
	}
	if envelope.ID != "evt-1" || envelope.EventType != "holder.created" {
		t.Errorf("unexpected envelope: %+v", envelope)
	}
	if envelope.Payload["holder_id"] != "holder-1" {
		t.Errorf("payload not carried: %+v", envelope.Payload)
	}
}

func TestKafkaPublisherPublishError(t *testing.T) {
	writeErr := errors.New("broker unavailable")
	pub := &KafkaPublisher{writer: &stubKafkaWriter{err: writeErr}}

	err := pub.Publish(context.Background(), &domain.OutboxEvent{ID: "evt-1", AggregateID: "holder-1"})
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}
}

func TestKafkaPublisherClose(t *testing.T) {
	writer := &stubKafkaWriter{}
	pub := &KafkaPublisher{writer: writer}

	if err := pub.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !writer.closed {
		t.Fatal("expected writer to be closed")
	}
}
