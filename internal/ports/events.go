package ports

import "context"

const (
	// EventBatchStarted is emitted once validation passed and calls begin.
	EventBatchStarted = "batch.started"
	// EventBatchCompleted is emitted after every entity was attempted.
	EventBatchCompleted = "batch.completed"
	// EventBatchFailed is emitted when a setup failure ends the batch.
	EventBatchFailed = "batch.failed"
	// EventBatchRejected is emitted when validation rejects the input.
	EventBatchRejected = "batch.rejected"
	// EventEntitySucceeded is emitted after an entity's call succeeded.
	EventEntitySucceeded = "entity.succeeded"
	// EventEntityFailed is emitted after an entity's call failed.
	EventEntityFailed = "entity.failed"
)

// DomainEvent represents a significant occurrence within the domain or
// application layer. Events carry structured payloads that downstream
// subscribers can use for logging, UI updates, or integrations.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Dispatch is
// synchronous: Publish blocks until all handlers run, so observability
// signals appear before the process exits. Implementations must be
// thread-safe because email fan-out publishes from several goroutines.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Handlers should avoid
// panicking; failures should be surfaced via returned errors so publishers can
// log diagnostics and continue delivering to remaining subscribers.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler. Callers must invoke
// Unsubscribe to stop receiving events and release resources.
type Subscription interface {
	Unsubscribe()
}
