// Package preferences provides the settings page for display preferences.
package preferences

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/formbot/internal/settings"
)

// SetupRoutes configures routes for the preferences feature.
func SetupRoutes(router chi.Router, sessionStore sessions.Store, defaultTheme settings.Theme, isDev bool) error {
	handlers := NewHandlers(sessionStore, defaultTheme, isDev)

	router.Get("/settings", handlers.SettingsPage)
	router.Post("/settings/theme", handlers.ToggleTheme)

	return nil
}
