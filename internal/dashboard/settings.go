package dashboard

import (
	"context"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lucent-dev/lucent/internal/api"
)

// settingsModel buffers unsaved form edits. The buffer is local UI
// state: nothing reaches the shared store (or the backend) until the
// user saves, at which point the buffered patch is sent as one
// updateSettings call.
type settingsModel struct {
	cursor int
	patch  api.SettingsPatch
}

func newSettingsModel() settingsModel {
	return settingsModel{patch: api.SettingsPatch{}}
}

// settingsRows returns the form rows in display order: fixed fields
// first, then integrations sorted by name.
func (m Model) settingsRows() []string {
	rows := []string{"theme", "notifications", "dataCollection"}

	names := make([]string, 0, len(m.snap.Settings.Integrations))
	for name := range m.snap.Settings.Integrations {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rows = append(rows, "integrations."+name)
	}
	return rows
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.settingsRows()

	switch msg.String() {
	case "up", "k":
		if m.settings.cursor > 0 {
			m.settings.cursor--
		}
	case "down", "j":
		if m.settings.cursor < len(rows)-1 {
			m.settings.cursor++
		}
	case " ", "space", "enter":
		m.toggleRow(rows[m.settings.cursor])
	case "u":
		m.settings.patch = api.SettingsPatch{}
	case "s":
		if len(m.settings.patch) == 0 {
			return m, nil
		}
		patch := m.settings.patch
		m.settings.patch = api.SettingsPatch{}
		acts := m.acts
		return m, func() tea.Msg {
			acts.SaveSettings(context.Background(), patch)
			return nil
		}
	}
	return m, nil
}

// toggleRow writes the flipped value into the pending patch. Theme
// cycles light → dark → system.
func (m *Model) toggleRow(row string) {
	if row == "theme" {
		current := m.snap.Settings.Theme
		if v, ok := m.settings.patch["theme"]; ok {
			current = api.Theme(v.(string))
		}
		m.settings.patch["theme"] = string(nextTheme(current))
		return
	}

	m.settings.patch[row] = !m.effectiveBool(row)
}

func nextTheme(t api.Theme) api.Theme {
	switch t {
	case api.ThemeLight:
		return api.ThemeDark
	case api.ThemeDark:
		return api.ThemeSystem
	default:
		return api.ThemeLight
	}
}

// effectiveBool resolves a bool row to its pending value when edited,
// otherwise the store value.
func (m Model) effectiveBool(row string) bool {
	if v, ok := m.settings.patch[row]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}

	switch row {
	case "notifications":
		return m.snap.Settings.Notifications
	case "dataCollection":
		return m.snap.Settings.DataCollection
	}
	if name, ok := strings.CutPrefix(row, "integrations."); ok {
		return m.snap.Settings.Integrations[name]
	}
	return false
}

func (m Model) viewSettings() string {
	st := m.styles
	rows := m.settingsRows()

	var b strings.Builder
	b.WriteString(st.section.Render("┃ Settings") + "\n")

	for i, row := range rows {
		marker := "  "
		label := st.label.Render(rowLabel(row))
		if i == m.settings.cursor {
			marker = st.footerKey.Render("❯ ")
			label = st.value.Render(rowLabel(row))
		}

		var value string
		if row == "theme" {
			theme := m.snap.Settings.Theme
			if v, ok := m.settings.patch["theme"]; ok {
				theme = api.Theme(v.(string))
			}
			value = st.value.Render(string(theme))
		} else if m.effectiveBool(row) {
			value = st.good.Render("on")
		} else {
			value = st.dim.Render("off")
		}

		edited := ""
		if _, ok := m.settings.patch[row]; ok {
			edited = st.warn.Render(" *")
		}

		b.WriteString(marker + padRight(label, 34) + value + edited + "\n")
	}

	if len(m.settings.patch) > 0 {
		b.WriteString("\n" + st.warn.Render("  unsaved changes") + st.dim.Render("  [s] save, [u] undo"))
	} else {
		b.WriteString("\n" + st.dim.Render("  space toggles, s saves"))
	}
	return b.String()
}

func rowLabel(row string) string {
	if name, ok := strings.CutPrefix(row, "integrations."); ok {
		return "integration: " + name
	}
	return row
}

// padRight pads the styled cell to a fixed visual width. Styled strings
// carry ANSI codes, so padding keys off lipgloss's printable width.
func padRight(styled string, width int) string {
	w := lipgloss.Width(styled)
	if w >= width {
		return styled
	}
	return styled + strings.Repeat(" ", width-w)
}
