package adapter

import (
	"context"

	"github.com/homefront-community/homefront/models"
)

// Gateway defines transport-agnostic communication with the homefront
// backend. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
//
// All domain endpoints beyond the auth trio are plain request/response
// pass-throughs; no business rules live in this layer.
type Gateway interface {
	// SetTokenSource installs the function consulted for the bearer token on
	// every authenticated request. The session manager owns the token; this
	// is the only way the transport layer obtains it.
	SetTokenSource(source func() string)

	// Login exchanges credentials for a bearer token via POST /auth/token.
	// The token endpoint is contractually form-urlencoded, not JSON.
	// Returns an error if the request fails or the server rejects the
	// credentials; nothing is stored on failure.
	Login(ctx context.Context, email, password string) (models.Token, error)

	// Register creates a new account via POST /auth/register. It does not
	// authenticate; callers must still log in afterwards.
	Register(ctx context.Context, req models.RegisterRequest) error

	// CurrentUser fetches the authenticated identity via GET /users/me.
	// When bustCache is true the request carries cache-defeating headers and
	// a timestamp query parameter, for retrying after an intermediary cache
	// has served a hollow body.
	CurrentUser(ctx context.Context, bustCache bool) (models.UserPayload, error)

	// UpdateProfile updates the caller's profile via PUT /users/me.
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.UserPayload, error)

	// ChangePassword changes the caller's password via POST /users/me/password.
	ChangePassword(ctx context.Context, change models.PasswordChange) error

	// Listings fetches all listings via GET /apartments. The endpoint is
	// known to answer either a bare array or an {"apartments": [...]}
	// envelope; both shapes are accepted.
	Listings(ctx context.Context) ([]models.Listing, error)

	// Listing fetches one listing via GET /apartments/{id}.
	Listing(ctx context.Context, id int64) (models.Listing, error)

	// CreateListing publishes a new listing via POST /apartments.
	CreateListing(ctx context.Context, req models.ListingCreate) (models.Listing, error)

	// Apply submits an application to a listing via POST /apartments/{id}/apply.
	Apply(ctx context.Context, listingID int64, message string) (models.Application, error)

	// Applied reports whether the caller already applied to the listing,
	// via GET /apartments/{id}/applied.
	Applied(ctx context.Context, listingID int64) (bool, error)

	// OwnerApplications lists applications to the caller's own listings via
	// GET /owner/applications.
	OwnerApplications(ctx context.Context) ([]models.Application, error)

	// AcceptApplication accepts an application via POST /applications/{id}/accept.
	AcceptApplication(ctx context.Context, id int64) error

	// Notifications fetches the caller's notifications via GET /notifications.
	Notifications(ctx context.Context) ([]models.Notification, error)

	// MarkNotificationRead marks one notification read via
	// POST /notifications/{id}/read.
	MarkNotificationRead(ctx context.Context, id int64) error

	// AdminUsers lists all accounts via GET /admin/users. Requires an
	// administrative token; the backend enforces the privilege.
	AdminUsers(ctx context.Context) ([]models.UserPayload, error)

	// DeleteAdminUser removes an account via DELETE /admin/users/{id}.
	DeleteAdminUser(ctx context.Context, id int64) error

	// AdminListings lists all listings via GET /admin/apartments.
	AdminListings(ctx context.Context) ([]models.Listing, error)

	// DeleteAdminListing removes a listing via DELETE /admin/apartments/{id}.
	DeleteAdminListing(ctx context.Context, id int64) error

	// AdminApplications lists all applications via GET /admin/applications.
	AdminApplications(ctx context.Context) ([]models.Application, error)

	// DeleteAdminApplication removes an application via
	// DELETE /admin/applications/{id}.
	DeleteAdminApplication(ctx context.Context, id int64) error
}
