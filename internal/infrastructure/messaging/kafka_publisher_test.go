package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/origination/internal/domain/event"
	pkgkafka "github.com/bibbank/origination/pkg/kafka"
	"github.com/bibbank/origination/pkg/observability"
)

type mockProducer struct {
	publishFunc func(ctx context.Context, topic string, messages ...pkgkafka.Message) error
	topic       string
	messages    []pkgkafka.Message
}

func (m *mockProducer) Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error {
	m.topic = topic
	m.messages = append(m.messages, messages...)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, topic, messages...)
	}
	return nil
}

var at = time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

func TestKafkaEventPublisher_Publish(t *testing.T) {
	producer := &mockProducer{}
	pub := NewKafkaEventPublisher(producer, "origination.events", observability.DiscardLogger())

	evts := []event.DomainEvent{
		event.NewEligibilityAssessed("sess-1", decimal.NewFromInt(250000), decimal.NewFromInt(250000), true, at),
		event.NewStageChanged("sess-1", "credit_check", "approval", "ASSESS_ELIGIBILITY", at),
	}
	require.NoError(t, pub.Publish(context.Background(), evts...))

	assert.Equal(t, "origination.events", producer.topic)
	require.Len(t, producer.messages, 2)

	msg := producer.messages[0]
	assert.Equal(t, "sess-1", string(msg.Key))
	assert.Equal(t, event.TypeEligibilityAssessed, msg.Headers["event_type"])
	assert.Equal(t, evts[0].EventID(), msg.Headers["event_id"])
	assert.Equal(t, "OriginationSession", msg.Headers["aggregate_type"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "250000", body["sanctioned_amount"])
	assert.Equal(t, true, body["limit_exceeded"])
	assert.Equal(t, "sess-1", body["aggregate_id"])

	assert.Equal(t, event.TypeStageChanged, producer.messages[1].Headers["event_type"])
}

func TestKafkaEventPublisher_NoEvents(t *testing.T) {
	producer := &mockProducer{publishFunc: func(context.Context, string, ...pkgkafka.Message) error {
		t.Fatal("producer must not be called")
		return nil
	}}
	pub := NewKafkaEventPublisher(producer, "t", observability.DiscardLogger())
	assert.NoError(t, pub.Publish(context.Background()))
}

func TestKafkaEventPublisher_ProducerError(t *testing.T) {
	producer := &mockProducer{publishFunc: func(context.Context, string, ...pkgkafka.Message) error {
		return errors.New("leader not available")
	}}
	pub := NewKafkaEventPublisher(producer, "origination.events", observability.DiscardLogger())

	err := pub.Publish(context.Background(), event.NewSessionEnded("sess-1", "offer", at))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "origination.events")
	assert.Contains(t, err.Error(), "leader not available")
}

func TestLogEventPublisher(t *testing.T) {
	pub := NewLogEventPublisher(observability.DiscardLogger())
	assert.NoError(t, pub.Publish(context.Background(), event.NewSessionEnded("sess-1", "needs", at)))
}
