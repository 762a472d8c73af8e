package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lucent-dev/lucent/internal/state"
)

func (m Model) updateNotifications(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.notifCursor > 0 {
			m.notifCursor--
		}
	case "down", "j":
		if m.notifCursor < len(m.snap.Notifications)-1 {
			m.notifCursor++
		}
	case "d", "enter":
		if len(m.snap.Notifications) == 0 {
			return m, nil
		}
		m.acts.DismissNotification(m.snap.Notifications[m.notifCursor].ID)
	}
	return m, nil
}

func (m Model) viewNotifications() string {
	st := m.styles

	if len(m.snap.Notifications) == 0 {
		return st.dim.Render("  No notifications.")
	}

	var b strings.Builder
	b.WriteString(st.section.Render("┃ Notifications") + "\n")

	for i, n := range m.snap.Notifications {
		marker := "  "
		if i == m.notifCursor {
			marker = st.footerKey.Render("❯ ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n",
			marker,
			st.dim.Render(n.CreatedAt.Format("15:04:05")),
			notifBadge(st, n.Type),
			st.label.Render(n.Message)))
	}
	return b.String()
}

func notifBadge(st theme, kind state.NotificationType) string {
	switch kind {
	case state.NotifySuccess:
		return st.good.Render("✓")
	case state.NotifyError:
		return st.bad.Render("✗")
	default:
		return st.dim.Render("•")
	}
}
