package ports

import "context"

// EventPublisher fans a lifecycle event out to every connected observer.
// Publish is fire-and-forget: it never blocks on slow observers and never fails the caller.
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload any)
}
