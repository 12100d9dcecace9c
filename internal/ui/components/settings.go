package components

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/formbot/internal/settings"
)

// SettingsPage shows the display preferences with a theme switch.
func SettingsPage(theme settings.Theme) templ.Component {
	return component(func(m *markup) {
		m.open("main", "id", "settings", "class", "settings")
		m.el("h1", "Settings")

		m.open("section", "id", "settings-theme", "class", "card")
		m.el("h2", "Theme")
		m.el("p", "Current theme: "+theme.String(), "id", "settings-theme-current")
		m.open("form", "method", "post", "action", "/settings/theme")
		m.el("button", "Use "+theme.Toggle().String()+" theme",
			"id", "settings-theme-toggle", "class", "btn btn-primary", "type", "submit")
		m.close("form")
		m.close("section")

		m.el("a", "Back to dashboard", "id", "settings-back", "href", "/dashboard")
		m.close("main")
	})
}
