// Package auth provides the sign-in callback and logout routes.
package auth

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/formbot/internal/settings"
)

// SetupRoutes configures routes for the auth feature.
func SetupRoutes(
	router chi.Router,
	sessionStore sessions.Store,
	authURL string,
	defaultTheme settings.Theme,
	isDev bool,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(sessionStore, authURL, defaultTheme, isDev, logger)

	router.Get("/login", handlers.LoginPage)
	router.Get("/auth/callback", handlers.Callback)
	router.Post("/logout", handlers.Logout)

	return nil
}
