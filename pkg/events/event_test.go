package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planChosen struct {
	BaseEvent
	TenorMonths int `json:"tenor_months"`
}

func TestNewBaseEvent(t *testing.T) {
	at := time.Date(2025, 3, 4, 10, 0, 0, 0, time.FixedZone("IST", 19800))
	event := NewBaseEvent("origination.plan.selected", "session-1", "Session", at)

	assert.NotEmpty(t, event.EventID())
	assert.Equal(t, "origination.plan.selected", event.EventType())
	assert.Equal(t, "session-1", event.AggregateID())
	assert.Equal(t, "Session", event.AggregateType())
	assert.Equal(t, time.UTC, event.OccurredAt().Location())
	assert.True(t, event.OccurredAt().Equal(at))
}

func TestNewBaseEvent_ZeroTimeUsesNow(t *testing.T) {
	before := time.Now().UTC()
	event := NewBaseEvent("x", "agg", "Session", time.Time{})
	assert.False(t, event.OccurredAt().Before(before))
}

func TestBaseEvent_EmbeddedJSON(t *testing.T) {
	evt := planChosen{
		BaseEvent:   NewBaseEvent("origination.plan.selected", "session-9", "Session", time.Now()),
		TenorMonths: 12,
	}

	raw, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "session-9", decoded["aggregate_id"])
	assert.Equal(t, "origination.plan.selected", decoded["event_type"])
	assert.Equal(t, float64(12), decoded["tenor_months"])
	assert.NotEmpty(t, decoded["event_id"])
}

func TestEventCollector(t *testing.T) {
	t.Run("records in order", func(t *testing.T) {
		c := &EventCollector{}
		c.Record(NewBaseEvent("Event1", "agg", "Session", time.Now()))
		c.Record(NewBaseEvent("Event2", "agg", "Session", time.Now()))

		got := c.Events()
		require.Len(t, got, 2)
		assert.Equal(t, "Event1", got[0].EventType())
		assert.Equal(t, "Event2", got[1].EventType())
		assert.Len(t, c.Events(), 2, "Events must not clear")
	})

	t.Run("clear drains", func(t *testing.T) {
		c := &EventCollector{}
		c.Record(NewBaseEvent("Event1", "agg", "Session", time.Now()))

		assert.Len(t, c.ClearEvents(), 1)
		assert.Empty(t, c.Events())
		assert.Nil(t, c.ClearEvents())
	})
}
