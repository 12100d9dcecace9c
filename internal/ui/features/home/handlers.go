package home

import (
	"net/http"
	"time"

	"github.com/leapstack-labs/formbot/internal/settings"
	"github.com/leapstack-labs/formbot/internal/ui/components"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	defaultTheme settings.Theme
	isDev        bool
	now          func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(defaultTheme settings.Theme, isDev bool) *Handlers {
	return &Handlers{
		defaultTheme: defaultTheme,
		isDev:        isDev,
		now:          time.Now,
	}
}

// HomePage renders the marketing homepage.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	page := components.Page{
		Theme: settings.Load(settings.NewCookieStore(nil, r), h.defaultTheme),
		IsDev: h.isDev,
	}
	if err := components.Layout(page, components.HomePage(h.now())).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
