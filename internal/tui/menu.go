package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/homefront-community/homefront/internal/session"
	"github.com/homefront-community/homefront/models"
)

type menuItem struct {
	label string
	page  string
}

// MenuModel is the landing page. Its entries depend on the session state:
// anonymous visitors can browse listings or sign in, authenticated users get
// notifications and logout instead.
type MenuModel struct {
	sessions SessionService

	state  session.State
	unread int
	idx    int
	status string
}

func NewMenuModel(sessions SessionService) *MenuModel {
	return &MenuModel{
		sessions: sessions,
		state:    sessions.State(),
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) items() []menuItem {
	if m.state.Authenticated() {
		return []menuItem{
			{label: "Browse listings", page: "listings"},
			{label: m.notificationsLabel(), page: "notifications"},
			{label: "Log out", page: ""},
		}
	}
	return []menuItem{
		{label: "Browse listings", page: "listings"},
		{label: "Log in", page: "login"},
		{label: "Register", page: "register"},
	}
}

func (m *MenuModel) notificationsLabel() string {
	if m.unread == 0 {
		return "Notifications"
	}
	return fmt.Sprintf("Notifications %s", badgeStyle.Render(fmt.Sprintf(" %d ", m.unread)))
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RegisterSuccessNotice:
		if msg.Email != "" {
			m.status = "Account " + msg.Email + " created, you can log in now"
		} else {
			m.status = "Account created, you can log in now"
		}
		return m, nil
	case SessionStateMsg:
		m.state = msg.State
		if m.idx >= len(m.items()) {
			m.idx = len(m.items()) - 1
		}
		return m, nil
	case NotificationsMsg:
		m.unread = models.UnreadCount(msg.Items)
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items())-1 {
			m.idx++
		}
	case "enter":
		m.status = ""
		item := m.items()[m.idx]
		if item.page == "" {
			m.sessions.Logout()
			m.idx = 0
			return m, func() tea.Msg { return SessionStateMsg{State: m.sessions.State()} }
		}
		return m, func() tea.Msg { return NavigateTo{Page: item.page} }
	case "q":
		return m, tea.Quit
	}

	return m, nil
}

func (m *MenuModel) View() string {
	var b strings.Builder

	if m.state.Loading {
		b.WriteString("Checking your session...\n\n")
	} else if m.state.Authenticated() {
		name := m.state.User.FullName
		if name == "" {
			name = m.state.User.Email
		}
		b.WriteString("Signed in as ")
		b.WriteString(name)
		if m.state.User.IsAdmin {
			b.WriteString(" (admin)")
		}
		b.WriteString("\n\n")
	}

	if m.status != "" {
		b.WriteString("OK: ")
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	for i, item := range m.items() {
		cursor := "  "
		label := item.label
		if i == m.idx {
			cursor = "> "
			label = selectedStyle.Render(label)
		}
		b.WriteString(cursor)
		b.WriteString(label)
		b.WriteString("\n")
	}

	return renderPage("HOMEFRONT", strings.TrimRight(b.String(), "\n"), "enter: select │ ↑/↓: move │ v: version │ q: quit")
}
