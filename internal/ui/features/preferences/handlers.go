package preferences

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/formbot/internal/settings"
	"github.com/leapstack-labs/formbot/internal/ui/components"
	"github.com/leapstack-labs/formbot/internal/ui/session"
)

// Handlers provides HTTP handlers for the settings page.
type Handlers struct {
	sessionStore sessions.Store
	defaultTheme settings.Theme
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sessionStore sessions.Store, defaultTheme settings.Theme, isDev bool) *Handlers {
	return &Handlers{
		sessionStore: sessionStore,
		defaultTheme: defaultTheme,
		isDev:        isDev,
	}
}

func (h *Handlers) signedIn(w http.ResponseWriter, r *http.Request) bool {
	if session.Token(h.sessionStore, r) == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return false
	}
	return true
}

// SettingsPage renders the preferences of the signed-in user.
func (h *Handlers) SettingsPage(w http.ResponseWriter, r *http.Request) {
	if !h.signedIn(w, r) {
		return
	}

	theme := settings.Load(settings.NewCookieStore(nil, r), h.defaultTheme)
	page := components.Page{Title: "Settings", Theme: theme, IsDev: h.isDev}
	if err := components.Layout(page, components.SettingsPage(theme)).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ToggleTheme flips the stored theme and returns to the settings page.
func (h *Handlers) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	if !h.signedIn(w, r) {
		return
	}

	store := settings.NewCookieStore(w, r)
	theme := settings.Load(store, h.defaultTheme).Toggle()
	if err := settings.Save(store, theme); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
