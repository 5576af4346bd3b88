// Package workers hosts the background jobs of the client: currently a
// single poller that keeps the in-app notification badge fresh while the
// user is signed in.
package workers

import (
	"context"
	"time"

	"github.com/homefront-community/homefront/models"
)

// NotificationFetcher is the slice of the transport layer the poller needs.
type NotificationFetcher interface {
	Notifications(ctx context.Context) ([]models.Notification, error)
}

// NotificationPoller periodically fetches notifications and reports them to
// a callback. Implementations are idle until Start is called.
type NotificationPoller interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
