// Package dashboard is the view composition layer: a bubbletea program
// that renders the shared state as cards, charts, lists and forms.
// Components read store snapshots delivered as messages and trigger
// gateway calls through the action layer; anything that must be visible
// to another page goes through the store, while purely local UI state
// (cursors, pending form edits, selected ranges) stays in the model.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lucent-dev/lucent/internal/actions"
	"github.com/lucent-dev/lucent/internal/state"
)

type page int

const (
	pageOverview page = iota
	pageInsights
	pageNotifications
	pageSettings
	pageExport
)

var pageTitles = [...]string{"Overview", "Insights", "Notifications", "Settings", "Export"}

// fetchWindow is the insight range loaded on start and refresh.
const fetchWindow = 30 * 24 * time.Hour

// Message types
type stateMsg state.Snapshot
type tickMsg time.Time

// Model is the root dashboard model.
type Model struct {
	acts      *actions.Actions
	updates   <-chan state.Snapshot
	cancelSub func()
	interval  time.Duration

	snap   state.Snapshot
	styles theme
	page   page
	width  int
	height int

	insightList insightListModel
	settings    settingsModel
	export      exportModel
	notifCursor int

	quitting bool
}

// New creates the dashboard over an already-populated store and action
// layer. The model subscribes to the store immediately.
func New(store *state.Store, acts *actions.Actions, refreshInterval time.Duration) Model {
	updates, cancel := store.Subscribe()
	snap := store.Snapshot()

	return Model{
		acts:      acts,
		updates:   updates,
		cancelSub: cancel,
		interval:  refreshInterval,
		snap:      snap,
		styles:    themeFor(snap.Settings.Theme),
		settings:  newSettingsModel(),
		export:    newExportModel(),
	}
}

// Init starts the subscription pump, the refresh ticker and the first
// insight fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.updates),
		tick(m.interval),
		m.fetchCmd(),
	)
}

func waitForState(ch <-chan state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return stateMsg(snap)
	}
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchCmd runs a fetch in the background. Results and failures land in
// the store; the subscription delivers them back as a stateMsg. Nothing
// coordinates overlapping fetches: the last completion wins.
func (m Model) fetchCmd() tea.Cmd {
	acts := m.acts
	return func() tea.Msg {
		end := time.Now()
		acts.FetchInsights(context.Background(), end.Add(-fetchWindow), end)
		return nil
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		return m, tea.Batch(tick(m.interval), m.fetchCmd())

	case stateMsg:
		m.snap = state.Snapshot(msg)
		m.styles = themeFor(m.snap.Settings.Theme)
		m.clampCursors()
		return m, waitForState(m.updates)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.cancelSub()
		return m, tea.Quit
	case "r":
		// Settings form owns "r" for nothing; refresh is global.
		return m, m.fetchCmd()
	case "tab":
		m.page = (m.page + 1) % page(len(pageTitles))
		return m, nil
	case "shift+tab":
		m.page = (m.page + page(len(pageTitles)) - 1) % page(len(pageTitles))
		return m, nil
	case "1", "2", "3", "4", "5":
		m.page = page(int(msg.String()[0] - '1'))
		return m, nil
	}

	switch m.page {
	case pageInsights:
		return m.updateInsightList(msg)
	case pageNotifications:
		return m.updateNotifications(msg)
	case pageSettings:
		return m.updateSettings(msg)
	case pageExport:
		return m.updateExport(msg)
	}
	return m, nil
}

// clampCursors keeps page cursors valid after the lists underneath them
// change size, e.g. when a refetch shrinks the insight list.
func (m *Model) clampCursors() {
	if n := len(m.snap.Insights); m.insightList.cursor >= n {
		m.insightList.cursor = max(0, n-1)
	}
	if n := len(m.snap.Notifications); m.notifCursor >= n {
		m.notifCursor = max(0, n-1)
	}
}

// View renders the active page.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.styles

	var b strings.Builder
	b.WriteString(st.header.Render(" Lucent ") + "  " + m.renderTabs() + "\n")

	if m.snap.Loading {
		b.WriteString(st.dim.Render("  loading...") + "\n")
	} else {
		b.WriteString("\n")
	}

	// A non-empty error flag renders a generic failure banner; the page
	// does not retry on its own.
	if m.snap.Error != "" {
		b.WriteString(st.banner.Render("⚠ "+m.snap.Error) + "\n")
	}

	switch m.page {
	case pageOverview:
		b.WriteString(m.viewOverview())
	case pageInsights:
		b.WriteString(m.viewInsightList())
	case pageNotifications:
		b.WriteString(m.viewNotifications())
	case pageSettings:
		b.WriteString(m.viewSettings())
	case pageExport:
		b.WriteString(m.viewExport())
	}

	b.WriteString("\n" + m.renderFooter())
	return st.container.Render(b.String())
}

func (m Model) renderTabs() string {
	st := m.styles
	tabs := make([]string, len(pageTitles))
	for i, title := range pageTitles {
		label := fmt.Sprintf("%d %s", i+1, title)
		if page(i) == m.page {
			tabs[i] = st.tabActive.Render(label)
		} else {
			tabs[i] = st.tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderFooter() string {
	st := m.styles
	keys := [][2]string{
		{"tab", "page"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	switch m.page {
	case pageInsights:
		keys = append([][2]string{{"↑/↓", "select"}, {"enter", "report"}}, keys...)
	case pageNotifications:
		keys = append([][2]string{{"↑/↓", "select"}, {"d", "dismiss"}}, keys...)
	case pageSettings:
		keys = append([][2]string{{"↑/↓", "field"}, {"space", "toggle"}, {"s", "save"}, {"u", "undo"}}, keys...)
	case pageExport:
		keys = append([][2]string{{"f", "format"}, {"w", "window"}, {"enter", "export"}}, keys...)
	}

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = st.footerKey.Render("["+k[0]+"]") + st.footer.Render(" "+k[1])
	}
	return strings.Join(parts, st.footer.Render("  "))
}
