package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/homefront-community/homefront/internal/session"
	"github.com/homefront-community/homefront/models"
)

// DetailModel shows a single listing. Signed-in users can apply with an
// optional message and copy the owner's contact details to the clipboard.
type DetailModel struct {
	ctx      context.Context
	backend  Backend
	sessions SessionService

	listing models.Listing
	applied bool
	loading bool
	errMsg  string
	status  string

	composing  bool
	message    textinput.Model
	submitting bool

	state session.State
}

func NewDetailModel(ctx context.Context, backend Backend, sessions SessionService) *DetailModel {
	message := textinput.New()
	message.Placeholder = "a few words about yourself (optional)"
	message.CharLimit = 500
	message.Width = 48

	return &DetailModel{
		ctx:      ctx,
		backend:  backend,
		sessions: sessions,
		message:  message,
		state:    sessions.State(),
	}
}

func (m *DetailModel) Init() tea.Cmd {
	return nil
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openListingMsg:
		m.loading = true
		m.errMsg = ""
		m.status = ""
		m.applied = false
		m.composing = false
		m.message.SetValue("")
		return m, m.cmdLoad(msg.id)
	case listingLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.listing = msg.listing
		m.applied = msg.applied
		return m, nil
	case appliedMsg:
		m.submitting = false
		m.composing = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.applied = true
		m.status = "Application sent!"
		return m, cmdClearStatus()
	case copiedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = "Copied!"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case SessionStateMsg:
		m.state = msg.State
		return m, nil
	case NotificationsMsg:
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.composing {
		switch keyMsg.String() {
		case "esc":
			m.composing = false
			m.message.Blur()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}
			m.submitting = true
			return m, m.cmdApply(m.listing.ID, strings.TrimSpace(m.message.Value()))
		}
		var cmd tea.Cmd
		m.message, cmd = m.message.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return NavigateTo{Page: "listings"} }
	case "a":
		switch {
		case !m.state.Authenticated():
			m.errMsg = "Log in to apply"
		case m.applied:
			m.status = "You already applied"
			return m, cmdClearStatus()
		default:
			m.errMsg = ""
			m.composing = true
			m.message.Focus()
			return m, textinput.Blink
		}
	case "c":
		if m.listing.ContactInfo == "" {
			m.errMsg = "No contact details on this listing"
			return m, nil
		}
		return m, m.cmdCopy(m.listing.ContactInfo)
	}

	return m, nil
}

func (m *DetailModel) View() string {
	if m.loading {
		return renderPage("LISTING", "Loading...", "esc: back")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.listing.Title))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("City      %s\n", valueOrDash(m.listing.City)))
	b.WriteString(fmt.Sprintf("Address   %s\n", valueOrDash(m.listing.Address)))
	b.WriteString(fmt.Sprintf("Rent      %s / month\n", formatRent(m.listing.Rent)))
	b.WriteString(fmt.Sprintf("Rooms     %d\n", m.listing.Rooms))
	furnished := "no"
	if m.listing.Furnished {
		furnished = "yes"
	}
	b.WriteString(fmt.Sprintf("Furnished %s\n", furnished))
	b.WriteString(fmt.Sprintf("Owner     %s\n", valueOrDash(m.listing.OwnerName)))
	b.WriteString(fmt.Sprintf("Contact   %s\n", valueOrDash(m.listing.ContactInfo)))

	if m.listing.Description != "" {
		b.WriteString("\n")
		b.WriteString(m.listing.Description)
		b.WriteString("\n")
	}

	if m.applied {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("You have applied to this listing."))
		b.WriteString("\n")
	}

	if m.composing {
		b.WriteString("\nMessage: [")
		b.WriteString(m.message.View())
		b.WriteString("]\n")
		if m.submitting {
			b.WriteString("[Sending...]\n")
		} else {
			b.WriteString(helpStyle.Render("enter: send │ esc: cancel"))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\nOK: ")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("LISTING", strings.TrimRight(b.String(), "\n"),
		"a: apply │ c: copy contact │ esc: back")
}

func (m *DetailModel) cmdLoad(id int64) tea.Cmd {
	ctx := m.ctx
	backend := m.backend
	authenticated := m.state.Authenticated()

	return func() tea.Msg {
		listing, err := backend.Listing(ctx, id)
		if err != nil {
			return listingLoadedMsg{err: err}
		}

		applied := false
		if authenticated {
			// Best effort: an error here only hides the "already applied"
			// hint, the listing itself still renders.
			applied, _ = backend.Applied(ctx, id)
		}
		return listingLoadedMsg{listing: listing, applied: applied}
	}
}

func (m *DetailModel) cmdApply(id int64, message string) tea.Cmd {
	ctx := m.ctx
	backend := m.backend

	return func() tea.Msg {
		_, err := backend.Apply(ctx, id, message)
		return appliedMsg{err: err}
	}
}

func (m *DetailModel) cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: clipboard.WriteAll(text)}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
