package events

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	cblog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	logginginfra "github.com/VenkataThrinadh/crmbulk/internal/infrastructure/logging"
	"github.com/VenkataThrinadh/crmbulk/internal/ports"
)

func newJSONLogger(t *testing.T, buf *bytes.Buffer, level string) *logginginfra.Logger {
	t.Helper()
	logger, err := logginginfra.New(logginginfra.Options{
		Writer:    buf,
		Level:     level,
		Layer:     "test",
		Component: "publisher",
		Formatter: cblog.JSONFormatter,
	})
	require.NoError(t, err)
	return logger
}

func TestLoggingPublisherIncludesCorrelationID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newJSONLogger(t, buf, "info"))

	ctx := logginginfra.WithCorrelationID(context.Background(), "abc-123")
	err := publisher.Publish(ctx, sampleEvent{
		eventType: ports.EventBatchStarted,
		payload:   map[string]interface{}{"operation": "delete", "items": 3},
	})
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "batch started", entry["msg"])
	require.Equal(t, ports.EventBatchStarted, entry["event_type"])
	require.Equal(t, "abc-123", entry["correlation_id"])
	require.Equal(t, "delete", entry["operation"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggingPublisherLevelsByEventType(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newJSONLogger(t, buf, "info"))

	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{
		eventType: ports.EventEntitySucceeded,
		payload:   map[string]interface{}{"entity_id": "c-1"},
	}))
	require.Zero(t, buf.Len(), "entity events are debug level")

	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{
		eventType: ports.EventBatchFailed,
		payload:   map[string]interface{}{"error": "boom"},
	}))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "batch failed", entry["msg"])
	require.Equal(t, "boom", entry["error"])
}

func TestLoggingPublisherLeadsWithBatchIdentity(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger, err := logginginfra.New(logginginfra.Options{
		Writer: buf,
		Level:  "debug",
		Format: "logfmt",
		Layer:  "test",
	})
	require.NoError(t, err)
	publisher := NewLoggingPublisher(logger)

	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{
		eventType: ports.EventEntityFailed,
		payload: map[string]interface{}{
			"error":       "locked",
			"entity_id":   "c-1",
			"operation":   "update",
			"entity_type": "customers",
		},
	}))

	line := buf.String()
	require.Contains(t, line, `msg="entity failed"`)
	require.Contains(t, line, "event_type=entity.failed entity_type=customers operation=update entity_id=c-1 error=locked")
}

func TestLoggingPublisherUnknownEventFallsBack(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newJSONLogger(t, buf, "info"))

	require.NoError(t, publisher.Publish(context.Background(), sampleEvent{eventType: "export.written", payload: "customers.csv"}))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "bulk event", entry["msg"])
	require.Equal(t, "customers.csv", entry["payload"])
}

func TestLoggingPublisherInvokesSubscribers(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	publisher := NewLoggingPublisher(newJSONLogger(t, buf, "info"))

	var handled int
	sub, err := publisher.Subscribe(ports.EventBatchCompleted, func(ctx context.Context, event ports.DomainEvent) error {
		handled++
		return nil
	})
	require.NoError(t, err)

	event := sampleEvent{
		eventType: ports.EventBatchCompleted,
		payload:   map[string]interface{}{"successful": 2},
	}
	require.NoError(t, publisher.Publish(context.Background(), event))
	require.Equal(t, 1, handled, "subscriber should be invoked")

	sub.Unsubscribe()
	require.NoError(t, publisher.Publish(context.Background(), event))
	require.Equal(t, 1, handled, "unsubscribed handler should not run")
}

type sampleEvent struct {
	eventType string
	payload   interface{}
}

func (e sampleEvent) EventType() string    { return e.eventType }
func (e sampleEvent) Payload() interface{} { return e.payload }
