// Package eventpub publishes ledger events for downstream consumers.
package eventpub

import (
	"context"
	"time"
)

// TransactionCompleted is emitted after a balance mutation and its history
// record have been committed.
type TransactionCompleted struct {
	OperationID     string    `json:"operation_id"`
	Kind            string    `json:"kind"`
	Username        string    `json:"username"`
	RelatedUsername string    `json:"related_username,omitempty"`
	Amount          string    `json:"amount"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// Publisher delivers completed transaction events.
//
// Publishing is best effort: the ledger state is already consistent when an
// event is emitted, so delivery failures are logged by the caller and never
// surfaced to clients.
type Publisher interface {
	Publish(ctx context.Context, event TransactionCompleted) error
}

// NoopPublisher discards all events. It is used when no brokers are configured.
type NoopPublisher struct{}

// Publish implements Publisher.
func (NoopPublisher) Publish(ctx context.Context, event TransactionCompleted) error {
	return nil
}
