// Package home provides the marketing homepage feature for the UI.
package home

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/formbot/internal/settings"
)

// SetupRoutes configures routes for the home feature.
func SetupRoutes(router chi.Router, defaultTheme settings.Theme, isDev bool) error {
	handlers := NewHandlers(defaultTheme, isDev)

	router.Get("/", handlers.HomePage)

	return nil
}
