package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lucent-dev/lucent/internal/api"
)

func TestApplyPatchTopLevelFields(t *testing.T) {
	settings := api.DefaultSettings()

	out := ApplyPatch(settings, api.SettingsPatch{
		"theme":          "dark",
		"notifications":  false,
		"dataCollection": false,
	})

	assert.Equal(t, api.ThemeDark, out.Theme)
	assert.False(t, out.Notifications)
	assert.False(t, out.DataCollection)
}

func TestApplyPatchDottedIntegrationKeys(t *testing.T) {
	settings := api.DefaultSettings()
	settings.Integrations["slack"] = true

	out := ApplyPatch(settings, api.SettingsPatch{
		"integrations.github": true,
		"integrations.plaid":  false,
	})

	assert.True(t, out.Integrations["github"])
	assert.False(t, out.Integrations["plaid"])
	assert.True(t, out.Integrations["slack"], "untouched integrations retained")
}

func TestApplyPatchIntegrationsMapMergesPerKey(t *testing.T) {
	settings := api.DefaultSettings()
	settings.Integrations = map[string]bool{"slack": true, "github": false}

	// JSON-decoded patches arrive as map[string]any.
	out := ApplyPatch(settings, api.SettingsPatch{
		"integrations": map[string]any{"github": true},
	})

	assert.True(t, out.Integrations["github"])
	assert.True(t, out.Integrations["slack"], "merge must not drop sibling keys")
}

func TestApplyPatchIgnoresUnknownAndMistyped(t *testing.T) {
	settings := api.DefaultSettings()
	settings.Theme = api.ThemeDark

	out := ApplyPatch(settings, api.SettingsPatch{
		"theme":         "neon",  // not a valid theme
		"notifications": "yes",   // wrong type
		"volume":        11,      // unknown key
		"integrations.": true,    // empty integration name
	})

	assert.Equal(t, settings, out)
}

func TestApplyPatchDoesNotMutateInput(t *testing.T) {
	settings := api.DefaultSettings()
	settings.Integrations["slack"] = true

	ApplyPatch(settings, api.SettingsPatch{"integrations.slack": false, "theme": "light"})

	assert.Equal(t, api.ThemeSystem, settings.Theme)
	assert.True(t, settings.Integrations["slack"])
}
