// Package notify defines a fire-and-forget sink for service-level failure
// notifications. Services report every failed operation here in addition to
// returning a typed error; the sink has no acknowledgment contract and must
// never influence the outcome of the operation.
package notify

import "context"

// Notification is a single sink event.
type Notification struct {
	Message string
}

// Notifier consumes notifications. Implementations must be safe for
// concurrent use.
type Notifier interface {
	Handle(ctx context.Context, n Notification)
}
