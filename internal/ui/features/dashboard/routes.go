// Package dashboard provides the dashboard page, its update stream and the
// actions the page posts.
package dashboard

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/formbot/internal/dashboard"
)

// SetupRoutes configures routes for the dashboard feature.
func SetupRoutes(
	router chi.Router,
	views *dashboard.Registry,
	sessionStore sessions.Store,
	newAPI APIFactory,
	opts Options,
) error {
	handlers := NewHandlers(views, sessionStore, newAPI, opts)

	router.Get("/dashboard", handlers.DashboardPage)
	router.Route("/dashboard/{view}", func(r chi.Router) {
		r.Get("/updates", handlers.DashboardUpdates)

		r.Post("/workspace-menu", handlers.action("workspace-menu", handlers.ToggleWorkspaceMenu))
		r.Post("/theme", handlers.action("theme", handlers.ToggleTheme))
		r.Post("/modal/close", handlers.action("modal/close", handlers.CloseModal))
		r.Post("/pointer", handlers.action("pointer", handlers.Pointer))

		r.Post("/create/open", handlers.action("create/open", handlers.OpenCreateModal))
		r.Post("/create", handlers.action("create", handlers.CreateFolder))

		r.Post("/delete/open", handlers.action("delete/open", handlers.OpenDeleteModal))
		r.Post("/delete", handlers.action("delete", handlers.ConfirmDelete))

		r.Post("/share/open", handlers.action("share/open", handlers.OpenShareModal))
		r.Post("/share/permission-menu", handlers.action("share/permission-menu", handlers.TogglePermissionMenu))
		r.Post("/share/permission", handlers.action("share/permission", handlers.SelectPermission))
		r.Post("/share", handlers.action("share", handlers.SubmitShare))
	})

	return nil
}
