package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lucent-dev/lucent/internal/api"
)

// exportModel holds the export form's local state: format and window
// selections sit here until the user submits, never in the shared
// store.
type exportModel struct {
	format  api.ExportFormat
	window  time.Duration
	lastOut string
}

var exportWindows = []time.Duration{
	7 * 24 * time.Hour,
	30 * 24 * time.Hour,
	90 * 24 * time.Hour,
}

func newExportModel() exportModel {
	return exportModel{
		format: api.ExportJSON,
		window: exportWindows[1],
	}
}

func (m Model) updateExport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "f":
		if m.export.format == api.ExportJSON {
			m.export.format = api.ExportCSV
		} else {
			m.export.format = api.ExportJSON
		}
	case "w":
		for i, w := range exportWindows {
			if w == m.export.window {
				m.export.window = exportWindows[(i+1)%len(exportWindows)]
				break
			}
		}
	case "enter":
		end := time.Now()
		start := end.Add(-m.export.window)
		path := fmt.Sprintf("lucent-export-%s.%s", end.Format("20060102-150405"), m.export.format)
		m.export.lastOut = path

		acts := m.acts
		format := m.export.format
		return m, func() tea.Msg {
			acts.ExportData(context.Background(), format, start, end, path)
			return nil
		}
	}
	return m, nil
}

func (m Model) viewExport() string {
	st := m.styles

	var b strings.Builder
	b.WriteString(st.section.Render("┃ Export") + "\n")
	b.WriteString("  " + st.label.Render("Format: ") + st.value.Render(string(m.export.format)) +
		st.dim.Render("  [f] toggle") + "\n")
	b.WriteString("  " + st.label.Render("Window: ") + st.value.Render(windowLabel(m.export.window)) +
		st.dim.Render("  [w] cycle") + "\n")
	b.WriteString("\n" + st.dim.Render("  enter downloads the export into the current directory"))

	if m.export.lastOut != "" {
		b.WriteString("\n  " + st.dim.Render("last export: ") + st.value.Render(m.export.lastOut))
	}
	return b.String()
}

func windowLabel(d time.Duration) string {
	return fmt.Sprintf("last %d days", int(d.Hours())/24)
}
