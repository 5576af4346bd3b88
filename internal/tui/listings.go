package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/homefront-community/homefront/models"
)

// ListingsModel is the listings browser. It loads listings from the backend,
// falling back to the local cache when the network is down, and offers a
// client-side city filter.
type ListingsModel struct {
	ctx     context.Context
	backend Backend
	cache   ListingCache

	items     []models.Listing
	idx       int
	loading   bool
	fromCache bool
	errMsg    string

	filtering bool
	filter    textinput.Model
}

func NewListingsModel(ctx context.Context, backend Backend, cache ListingCache) *ListingsModel {
	filter := textinput.New()
	filter.Placeholder = "city"
	filter.CharLimit = 40
	filter.Width = 24

	return &ListingsModel{
		ctx:     ctx,
		backend: backend,
		cache:   cache,
		loading: true,
		filter:  filter,
	}
}

func (m *ListingsModel) Init() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	return m.cmdLoad()
}

func (m *ListingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listingsLoadedMsg:
		m.loading = false
		m.fromCache = msg.fromCache
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.items
		m.clampIdx()
		return m, nil
	case SessionStateMsg, NotificationsMsg:
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.filtering {
		switch keyMsg.String() {
		case "enter", "esc":
			if keyMsg.String() == "esc" {
				m.filter.SetValue("")
			}
			m.filtering = false
			m.filter.Blur()
			m.clampIdx()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.clampIdx()
		return m, cmd
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.visible())-1 {
			m.idx++
		}
	case "/":
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink
	case "R":
		m.loading = true
		return m, m.cmdLoad()
	case "enter":
		visible := m.visible()
		if m.idx < len(visible) {
			id := visible[m.idx].ID
			return m, func() tea.Msg {
				return NavigateTo{Page: "detail", Payload: openListingMsg{id: id}}
			}
		}
	}

	return m, nil
}

func (m *ListingsModel) View() string {
	var b strings.Builder

	if m.loading {
		return renderPage("LISTINGS", "Loading...", "esc: back")
	}

	if m.fromCache {
		b.WriteString(helpStyle.Render("offline: showing cached listings"))
		b.WriteString("\n\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n\n")
	}

	if m.filtering || m.filter.Value() != "" {
		b.WriteString("Filter city: [")
		b.WriteString(m.filter.View())
		b.WriteString("]\n\n")
	}

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString("No listings found.\n")
	} else {
		b.WriteString(fmt.Sprintf("%-28s │ %-12s │ %-6s │ %s\n", "Title", "City", "Rooms", "Rent"))
		b.WriteString(strings.Repeat("─", 64))
		b.WriteString("\n")
		for i, item := range visible {
			cursor := "  "
			if i == m.idx {
				cursor = "> "
			}
			line := fmt.Sprintf("%s%-26s │ %-12s │ %-6d │ %s",
				cursor, fitText(item.Title, 26), fitText(item.City, 12), item.Rooms, formatRent(item.Rent))
			if i == m.idx {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return renderPage("LISTINGS", strings.TrimRight(b.String(), "\n"),
		"enter: open │ /: filter │ R: refresh │ esc: back")
}

// visible applies the city filter, case-insensitively.
func (m *ListingsModel) visible() []models.Listing {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if needle == "" {
		return m.items
	}

	var out []models.Listing
	for _, item := range m.items {
		if strings.Contains(strings.ToLower(item.City), needle) {
			out = append(out, item)
		}
	}
	return out
}

func (m *ListingsModel) clampIdx() {
	if n := len(m.visible()); m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

// cmdLoad fetches listings from the backend. On success the local cache is
// refreshed; on failure the cache is served instead, flagged as stale.
func (m *ListingsModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	backend := m.backend
	cache := m.cache

	return func() tea.Msg {
		items, err := backend.Listings(ctx)
		if err == nil {
			// A stale cache is tolerable; the fresh result still renders.
			_ = cache.ReplaceAll(ctx, items)
			return listingsLoadedMsg{items: items}
		}

		cached, cacheErr := cache.All(ctx)
		if cacheErr != nil || len(cached) == 0 {
			return listingsLoadedMsg{err: err}
		}
		return listingsLoadedMsg{items: cached, fromCache: true}
	}
}
