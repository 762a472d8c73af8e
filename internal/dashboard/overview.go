package dashboard

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/lucent-dev/lucent/internal/api"
)

const (
	cardWidth       = 34
	sparklineWidth  = 30
	sparklineHeight = 2
	overviewCards   = 6
	cardsPerRow     = 2
)

// viewOverview renders the top insights as cards: title, score bar and
// a sparkline of the insight's time series.
func (m Model) viewOverview() string {
	st := m.styles

	if len(m.snap.Insights) == 0 {
		if m.snap.Loading {
			return st.dim.Render("  fetching insights...")
		}
		return st.dim.Render("  No insights yet. Press [r] to refresh.")
	}

	insights := m.snap.Insights
	if len(insights) > overviewCards {
		insights = insights[:overviewCards]
	}

	cards := make([]string, 0, len(insights))
	for _, ins := range insights {
		cards = append(cards, m.renderCard(ins))
	}

	var rows []string
	for i := 0; i < len(cards); i += cardsPerRow {
		end := i + cardsPerRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}

	summary := st.dim.Render(fmt.Sprintf("  %d insights · last refreshed view of the past 30 days", len(m.snap.Insights)))
	return summary + "\n" + strings.Join(rows, "\n")
}

func (m Model) renderCard(ins api.Insight) string {
	st := m.styles

	var b strings.Builder
	b.WriteString(st.value.Render(truncate(ins.Title, cardWidth-4)) + "\n")
	b.WriteString(st.dim.Render(ins.Category+" · "+ins.Timestamp.Format("Jan 02 15:04")) + "\n")
	b.WriteString(st.label.Render(truncate(ins.Description, cardWidth-4)) + "\n")

	b.WriteString(st.dim.Render("score ") + m.scoreBar(ins.Score) + " " + scoreBadge(st, ins.Score) + "\n")
	b.WriteString(m.renderSparkline(ins.Data))

	return st.card.Width(cardWidth).Render(b.String())
}

// truncate shortens a card line to at most max runes. Byte slicing
// would split multi-byte runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func (m Model) scoreBar(score float64) string {
	bar := progress.New(
		progress.WithGradient("#00ff00", "#ff0000"),
		progress.WithWidth(cardWidth - 16),
		progress.WithoutPercentage(),
	)
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return bar.ViewAs(score)
}

func scoreBadge(st theme, score float64) string {
	switch {
	case score >= 0.8:
		return st.good.Render(fmt.Sprintf("%.2f", score))
	case score >= 0.5:
		return st.warn.Render(fmt.Sprintf("%.2f", score))
	default:
		return st.dim.Render(fmt.Sprintf("%.2f", score))
	}
}

// renderSparkline charts an insight's time series. Insights without
// series data get a fixed-width placeholder so cards line up.
func (m Model) renderSparkline(data []api.Point) string {
	st := m.styles
	if len(data) == 0 {
		return st.dim.Render(fmt.Sprintf("%*s", sparklineWidth, "no series"))
	}

	spark := sparkline.New(sparklineWidth, sparklineHeight)
	for _, p := range data {
		spark.Push(p.Value.InexactFloat64())
	}
	return st.spark.Render(spark.View())
}
