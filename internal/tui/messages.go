package tui

import (
	"github.com/homefront-community/homefront/internal/session"
	"github.com/homefront-community/homefront/models"
)

// NavigateTo switches the root router to another page. An optional Payload
// is delivered to the target page right after the switch.
type NavigateTo struct {
	Page    string
	Payload any
}

// LoginResult reports the outcome of an async login command.
type LoginResult struct {
	Err  error
	User models.User
}

// RegisterResult reports the outcome of an async registration command.
type RegisterResult struct {
	Err   error
	Email string
}

// RegisterSuccessNotice is handed to the menu page after a successful
// registration so it can show a confirmation line.
type RegisterSuccessNotice struct {
	Email string
}

// SessionStateMsg carries a session state snapshot into the running program.
type SessionStateMsg struct {
	State session.State
}

// NotificationsMsg carries a fresh notification set, either from the
// background poller or from an explicit fetch.
type NotificationsMsg struct {
	Items []models.Notification
}

type listingsLoadedMsg struct {
	items     []models.Listing
	fromCache bool
	err       error
}

type openListingMsg struct {
	id int64
}

type listingLoadedMsg struct {
	listing models.Listing
	applied bool
	err     error
}

type appliedMsg struct {
	err error
}

type notificationsLoadFailedMsg struct {
	err error
}

type notificationReadMsg struct {
	id  int64
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
