// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/formbot/internal/api"
	"github.com/leapstack-labs/formbot/internal/dashboard"
	"github.com/leapstack-labs/formbot/internal/settings"
	authFeature "github.com/leapstack-labs/formbot/internal/ui/features/auth"
	dashboardFeature "github.com/leapstack-labs/formbot/internal/ui/features/dashboard"
	homeFeature "github.com/leapstack-labs/formbot/internal/ui/features/home"
	preferencesFeature "github.com/leapstack-labs/formbot/internal/ui/features/preferences"
	"github.com/leapstack-labs/formbot/internal/ui/notifier"
	"github.com/leapstack-labs/formbot/internal/ui/resources"
)

// Options holds the settings shared by the feature routes.
type Options struct {
	AuthURL      string
	WorkspaceURL string
	DefaultTheme settings.Theme
	IsDev        bool
	Logger       *slog.Logger
	// Reload is pinged when the browser should reload (dev only).
	Reload *notifier.Notifier
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(
	router chi.Router,
	client *api.Client,
	views *dashboard.Registry,
	sessionStore sessions.Store,
	opts Options,
) error {
	// Hot reload endpoint for dev mode
	if opts.IsDev {
		reload := opts.Reload
		if reload == nil {
			reload = notifier.New()
		}
		setupReload(router, reload)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := homeFeature.SetupRoutes(router, opts.DefaultTheme, opts.IsDev); err != nil {
		return err
	}

	if err := authFeature.SetupRoutes(router, sessionStore, opts.AuthURL, opts.DefaultTheme, opts.IsDev, opts.Logger); err != nil {
		return err
	}

	if err := preferencesFeature.SetupRoutes(router, sessionStore, opts.DefaultTheme, opts.IsDev); err != nil {
		return err
	}

	newAPI := func(token string) dashboard.API { return client.WithToken(token) }
	if err := dashboardFeature.SetupRoutes(router, views, sessionStore, newAPI, dashboardFeature.Options{
		WorkspaceURL: opts.WorkspaceURL,
		DefaultTheme: opts.DefaultTheme,
		IsDev:        opts.IsDev,
		Logger:       opts.Logger,
	}); err != nil {
		return err
	}

	return nil
}

func setupReload(router chi.Router, reload *notifier.Notifier) {
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		pings, cancel := reload.Subscribe()
		defer cancel()

		sse := datastar.NewSSE(w, r)
		doReload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(doReload)
		select {
		case _, ok := <-pings:
			if ok {
				doReload()
			}
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		reload.Broadcast()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
