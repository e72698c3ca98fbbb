// Package events publishes bulk run events to the log and to in-process
// subscribers such as the progress view.
package events

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/VenkataThrinadh/crmbulk/internal/ports"
)

// LoggingPublisher writes every batch and entity event as one structured
// log entry and then runs the handlers subscribed to its type. The batch
// identity keys (entity_type, operation, entity_id) lead each entry so
// entries of one batch line up; other payload keys follow sorted.
type LoggingPublisher struct {
	logger ports.Logger
	subs   map[string][]subscriptionEntry
	nextID int
	mu     sync.RWMutex
}

// logFunc selects the level method of a logger.
type logFunc func(ports.Logger) func(context.Context, string, ...interface{})

type eventEntry struct {
	msg string
	log logFunc
}

var (
	logDebug logFunc = func(l ports.Logger) func(context.Context, string, ...interface{}) { return l.Debug }
	logInfo  logFunc = func(l ports.Logger) func(context.Context, string, ...interface{}) { return l.Info }
	logWarn  logFunc = func(l ports.Logger) func(context.Context, string, ...interface{}) { return l.Warn }
)

// Entity events stay at debug so large selections are quiet by default.
var eventEntries = map[string]eventEntry{
	ports.EventBatchStarted:    {msg: "batch started", log: logInfo},
	ports.EventBatchCompleted:  {msg: "batch completed", log: logInfo},
	ports.EventBatchFailed:     {msg: "batch failed", log: logWarn},
	ports.EventBatchRejected:   {msg: "batch rejected", log: logWarn},
	ports.EventEntitySucceeded: {msg: "entity succeeded", log: logDebug},
	ports.EventEntityFailed:    {msg: "entity failed", log: logDebug},
}

var leadingKeys = []string{"entity_type", "operation", "entity_id"}

// NewLoggingPublisher creates a publisher logging through logger.
func NewLoggingPublisher(logger ports.Logger) *LoggingPublisher {
	return &LoggingPublisher{
		logger: logger,
		subs:   make(map[string][]subscriptionEntry),
	}
}

// Publish logs the event, then delivers it synchronously to subscribers.
// A failing handler is logged and does not stop delivery.
func (p *LoggingPublisher) Publish(ctx context.Context, event ports.DomainEvent) error {
	if p == nil || p.logger == nil || event == nil {
		return nil
	}

	p.mu.RLock()
	handlers := append([]subscriptionEntry(nil), p.subs[event.EventType()]...)
	p.mu.RUnlock()

	entry, ok := eventEntries[event.EventType()]
	if !ok {
		entry = eventEntry{msg: "bulk event", log: logInfo}
	}
	entry.log(p.logger)(ctx, entry.msg, eventFields(event)...)

	for _, sub := range handlers {
		if sub.handler == nil {
			continue
		}
		if err := sub.handler(ctx, event); err != nil {
			p.logger.Warn(ctx, "event handler failed", "event_type", event.EventType(), "error", err)
		}
	}

	return nil
}

func eventFields(event ports.DomainEvent) []interface{} {
	fields := []interface{}{"event_type", event.EventType()}
	switch payload := event.Payload().(type) {
	case map[string]interface{}:
		for _, key := range leadingKeys {
			if value, ok := payload[key]; ok {
				fields = append(fields, key, value)
			}
		}
		rest := make([]string, 0, len(payload))
		for key := range payload {
			if !slices.Contains(leadingKeys, key) {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			fields = append(fields, key, payload[key])
		}
	case nil:
	default:
		fields = append(fields, "payload", payload)
	}
	return fields
}

// Subscribe registers a handler for the provided event type.
func (p *LoggingPublisher) Subscribe(eventType string, handler ports.EventHandler) (ports.Subscription, error) {
	if p == nil || handler == nil {
		return noopSubscription{}, nil
	}
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.subs[eventType] = append(p.subs[eventType], subscriptionEntry{id: id, handler: handler})
	p.mu.Unlock()

	return subscription{
		cancel: func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			handlers := p.subs[eventType]
			for i, entry := range handlers {
				if entry.id == id {
					p.subs[eventType] = append(handlers[:i], handlers[i+1:]...)
					break
				}
			}
		},
	}, nil
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

type subscription struct {
	cancel func()
}

func (s subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type subscriptionEntry struct {
	id      int
	handler ports.EventHandler
}
