package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/homefront-community/homefront/models"
)

// NotificationsModel lists the signed-in user's notifications. The
// background poller keeps it fresh; opening the page also triggers an
// immediate fetch. Enter marks the selected notification read.
type NotificationsModel struct {
	ctx     context.Context
	backend Backend

	items   []models.Notification
	idx     int
	loading bool
	errMsg  string
}

func NewNotificationsModel(ctx context.Context, backend Backend) *NotificationsModel {
	return &NotificationsModel{ctx: ctx, backend: backend}
}

func (m *NotificationsModel) Init() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	return m.cmdLoad()
}

func (m *NotificationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NotificationsMsg:
		m.loading = false
		m.items = msg.Items
		m.clampIdx()
		return m, nil
	case notificationsLoadFailedMsg:
		m.loading = false
		m.errMsg = humanizeError(msg.err)
		return m, nil
	case notificationReadMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		for i := range m.items {
			if m.items[i].ID == msg.id {
				m.items[i].Read = true
			}
		}
		// Re-broadcast so the menu badge shrinks too.
		items := m.items
		return m, func() tea.Msg { return NotificationsMsg{Items: items} }
	case SessionStateMsg:
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case "R":
		m.loading = true
		return m, m.cmdLoad()
	case "enter", "r":
		if m.idx < len(m.items) && !m.items[m.idx].Read {
			return m, m.cmdMarkRead(m.items[m.idx].ID)
		}
	}

	return m, nil
}

func (m *NotificationsModel) View() string {
	if m.loading {
		return renderPage("NOTIFICATIONS", "Loading...", "esc: back")
	}

	var b strings.Builder
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n\n")
	}

	if len(m.items) == 0 {
		b.WriteString("Nothing here yet.\n")
	} else {
		for i, item := range m.items {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			marker := "•"
			if item.Read {
				marker = " "
			}
			line := fmt.Sprintf("%s%s %s  %s",
				cursor, marker, item.CreatedAt.Format("02 Jan 15:04"), fitText(item.Message, 48))
			if i == m.idx {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return renderPage("NOTIFICATIONS", strings.TrimRight(b.String(), "\n"),
		"enter: mark read │ R: refresh │ esc: back")
}

func (m *NotificationsModel) clampIdx() {
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *NotificationsModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	backend := m.backend

	return func() tea.Msg {
		items, err := backend.Notifications(ctx)
		if err != nil {
			return notificationsLoadFailedMsg{err: err}
		}
		return NotificationsMsg{Items: items}
	}
}

func (m *NotificationsModel) cmdMarkRead(id int64) tea.Cmd {
	ctx := m.ctx
	backend := m.backend

	return func() tea.Msg {
		return notificationReadMsg{id: id, err: backend.MarkNotificationRead(ctx, id)}
	}
}
