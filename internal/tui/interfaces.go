package tui

import (
	"context"

	"github.com/homefront-community/homefront/internal/session"
	"github.com/homefront-community/homefront/models"
)

// SessionService is the slice of the session manager the UI consumes.
type SessionService interface {
	State() session.State
	Subscribe() (<-chan session.State, func())
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	Logout()
}

// Backend is the slice of the transport gateway the UI pages call.
type Backend interface {
	Listings(ctx context.Context) ([]models.Listing, error)
	Listing(ctx context.Context, id int64) (models.Listing, error)
	Apply(ctx context.Context, listingID int64, message string) (models.Application, error)
	Applied(ctx context.Context, listingID int64) (bool, error)
	Notifications(ctx context.Context) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
}

// ListingCache is the offline listing store consulted when the backend is
// unreachable.
type ListingCache interface {
	ReplaceAll(ctx context.Context, listings []models.Listing) error
	All(ctx context.Context) ([]models.Listing, error)
}
