package session

import (
	"context"

	"github.com/homefront-community/homefront/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

// Gateway is the slice of the transport layer the session manager depends
// on. The full backend surface lives in the adapter package; the manager
// needs only the auth trio.
type Gateway interface {
	// Login exchanges credentials for a bearer token. The exchange is
	// form-urlencoded on the wire; that detail is the transport's concern.
	Login(ctx context.Context, email, password string) (models.Token, error)

	// Register creates an account. It does not authenticate.
	Register(ctx context.Context, req models.RegisterRequest) error

	// CurrentUser fetches the authenticated identity. bustCache requests a
	// cache-defeating variant for retrying after a stale intermediary
	// response.
	CurrentUser(ctx context.Context, bustCache bool) (models.UserPayload, error)
}

// TokenStore persists the bearer token across process restarts.
// An absent token is not an error: LoadToken returns ("", nil).
type TokenStore interface {
	// SaveToken durably stores the credential, replacing any previous one.
	SaveToken(token string) error

	// LoadToken returns the stored credential, or "" when none is stored.
	LoadToken() (string, error)

	// DeleteToken removes the stored credential. Removing an absent token
	// is a no-op, not an error.
	DeleteToken() error
}
