package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// insightListModel holds the insight page's local UI state. The insight
// data itself always comes from the store snapshot.
type insightListModel struct {
	cursor int
}

func (m Model) updateInsightList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.insightList.cursor > 0 {
			m.insightList.cursor--
		}
	case "down", "j":
		if m.insightList.cursor < len(m.snap.Insights)-1 {
			m.insightList.cursor++
		}
	case "enter":
		if len(m.snap.Insights) == 0 {
			return m, nil
		}
		id := m.snap.Insights[m.insightList.cursor].ID
		acts := m.acts
		return m, func() tea.Msg {
			acts.GenerateReport(context.Background(), id)
			return nil
		}
	}
	return m, nil
}

func (m Model) viewInsightList() string {
	st := m.styles

	if len(m.snap.Insights) == 0 {
		return st.dim.Render("  No insights to list.")
	}

	var b strings.Builder
	b.WriteString(st.section.Render("┃ Insights") + "\n")

	for i, ins := range m.snap.Insights {
		marker := "  "
		line := st.label.Render(ins.Title)
		if i == m.insightList.cursor {
			marker = st.footerKey.Render("❯ ")
			line = st.value.Render(ins.Title)
		}

		b.WriteString(fmt.Sprintf("%s%s %s %s\n",
			marker,
			st.dim.Render(ins.Timestamp.Format("Jan 02")),
			line,
			scoreBadge(st, ins.Score)))

		if i == m.insightList.cursor && ins.Description != "" {
			b.WriteString("    " + st.dim.Render(ins.Description) + "\n")
		}
	}

	b.WriteString("\n" + st.dim.Render("  enter generates a report for the selected insight"))
	return b.String()
}
