package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lucent-dev/lucent/internal/api"
)

// theme is the resolved palette for the active settings.Theme. "system"
// resolves to dark; terminals rarely report their background reliably.
type theme struct {
	header    lipgloss.Style
	tab       lipgloss.Style
	tabActive lipgloss.Style
	section   lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	dim       lipgloss.Style
	good      lipgloss.Style
	warn      lipgloss.Style
	bad       lipgloss.Style
	card      lipgloss.Style
	container lipgloss.Style
	footer    lipgloss.Style
	footerKey lipgloss.Style
	spark     lipgloss.Style
	banner    lipgloss.Style
}

func themeFor(t api.Theme) theme {
	switch t {
	case api.ThemeLight:
		return lightTheme()
	default:
		return darkTheme()
	}
}

func darkTheme() theme {
	return theme{
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Bold(true).
			Padding(0, 1),
		tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1),
		tabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true).
			Underline(true).
			Padding(0, 1),
		section: lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true).
			MarginTop(1),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("45")),
		value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true),
		dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		good: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true),
		warn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true),
		bad: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			MarginRight(1),
		container: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(1, 2),
		footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			MarginTop(1),
		footerKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true),
		spark: lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")),
		banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("124")).
			Bold(true).
			Padding(0, 1),
	}
}

func lightTheme() theme {
	t := darkTheme()
	t.header = t.header.Background(lipgloss.Color("25")).Foreground(lipgloss.Color("255"))
	t.tabActive = t.tabActive.Foreground(lipgloss.Color("25"))
	t.section = t.section.Foreground(lipgloss.Color("25"))
	t.label = t.label.Foreground(lipgloss.Color("24"))
	t.value = t.value.Foreground(lipgloss.Color("16"))
	t.dim = t.dim.Foreground(lipgloss.Color("243"))
	t.good = t.good.Foreground(lipgloss.Color("28"))
	t.warn = t.warn.Foreground(lipgloss.Color("130"))
	t.bad = t.bad.Foreground(lipgloss.Color("124"))
	t.spark = t.spark.Foreground(lipgloss.Color("25"))
	t.footerKey = t.footerKey.Foreground(lipgloss.Color("25"))
	return t
}
