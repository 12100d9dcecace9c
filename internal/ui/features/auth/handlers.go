package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/formbot/internal/settings"
	"github.com/leapstack-labs/formbot/internal/ui/components"
	"github.com/leapstack-labs/formbot/internal/ui/session"
)

// Handlers provides HTTP handlers for signing in and out.
type Handlers struct {
	sessionStore sessions.Store
	authURL      string
	defaultTheme settings.Theme
	isDev        bool
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(sessionStore sessions.Store, authURL string, defaultTheme settings.Theme, isDev bool, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{
		sessionStore: sessionStore,
		authURL:      authURL,
		defaultTheme: defaultTheme,
		isDev:        isDev,
		logger:       logger,
	}
}

// LoginPage renders the sign-in page. Signed-in users go to the dashboard.
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session.Token(h.sessionStore, r) != "" {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	page := components.Page{
		Title: "Sign in",
		Theme: settings.Load(settings.NewCookieStore(nil, r), h.defaultTheme),
		IsDev: h.isDev,
	}
	if err := components.Layout(page, components.LoginPage(h.authURL)).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Callback stores the token issued by the sign-in service.
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		http.Error(w, "missing token", http.StatusBadRequest)
		return
	}

	if err := session.SetToken(h.sessionStore, w, r, token); err != nil {
		h.logger.Error("failed to store session token", "error", err)
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}
	h.logger.Debug("session started")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session and returns to the login page.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := session.Clear(h.sessionStore, w, r); err != nil {
		h.logger.Error("failed to clear session", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
