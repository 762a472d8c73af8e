package state

import (
	"strings"

	"github.com/lucent-dev/lucent/internal/api"
)

// ApplyPatch merges a partial settings patch into settings and returns
// the result. Recognized keys:
//
//	theme, notifications, dataCollection  - top-level fields
//	integrations                          - merged per integration name
//	integrations.<name>                   - single integration toggle
//
// Unknown keys and mistyped values are ignored so a newer backend patch
// never corrupts client state. Keys absent from the patch keep their
// current value.
func ApplyPatch(settings api.Settings, patch api.SettingsPatch) api.Settings {
	out := settings.Clone()

	for key, value := range patch {
		if name, ok := strings.CutPrefix(key, "integrations."); ok {
			if enabled, ok := value.(bool); ok && name != "" {
				out.Integrations[name] = enabled
			}
			continue
		}

		switch key {
		case "theme":
			if theme, ok := themeValue(value); ok {
				out.Theme = theme
			}
		case "notifications":
			if b, ok := value.(bool); ok {
				out.Notifications = b
			}
		case "dataCollection":
			if b, ok := value.(bool); ok {
				out.DataCollection = b
			}
		case "integrations":
			for name, enabled := range integrationsValue(value) {
				out.Integrations[name] = enabled
			}
		}
	}
	return out
}

func themeValue(v any) (api.Theme, bool) {
	var theme api.Theme
	switch t := v.(type) {
	case api.Theme:
		theme = t
	case string:
		theme = api.Theme(t)
	default:
		return "", false
	}

	switch theme {
	case api.ThemeLight, api.ThemeDark, api.ThemeSystem:
		return theme, true
	}
	return "", false
}

// integrationsValue accepts both typed and JSON-decoded maps.
func integrationsValue(v any) map[string]bool {
	switch m := v.(type) {
	case map[string]bool:
		return m
	case map[string]any:
		out := make(map[string]bool, len(m))
		for name, raw := range m {
			if enabled, ok := raw.(bool); ok {
				out[name] = enabled
			}
		}
		return out
	}
	return nil
}
