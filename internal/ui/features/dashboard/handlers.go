package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/formbot/internal/dashboard"
	"github.com/leapstack-labs/formbot/internal/settings"
	"github.com/leapstack-labs/formbot/internal/ui/components"
	"github.com/leapstack-labs/formbot/internal/ui/session"
)

// APIFactory returns an API client acting with token.
type APIFactory func(token string) dashboard.API

// Options configures the dashboard handlers.
type Options struct {
	WorkspaceURL string
	DefaultTheme settings.Theme
	IsDev        bool
	Logger       *slog.Logger
	// Mount runs the view's initial fetches. Defaults to a background goroutine.
	Mount func(v *dashboard.View)
}

// Handlers provides HTTP handlers for the dashboard feature.
type Handlers struct {
	views        *dashboard.Registry
	sessionStore sessions.Store
	newAPI       APIFactory
	opts         Options
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(views *dashboard.Registry, sessionStore sessions.Store, newAPI APIFactory, opts Options) *Handlers {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.DefaultTheme == "" {
		opts.DefaultTheme = settings.DefaultTheme
	}
	h := &Handlers{
		views:        views,
		sessionStore: sessionStore,
		newAPI:       newAPI,
		opts:         opts,
		logger:       logger,
	}
	if h.opts.Mount == nil {
		h.opts.Mount = h.mountInBackground
	}
	return h
}

func (h *Handlers) mountInBackground(v *dashboard.View) {
	go func() {
		if err := v.Mount(v.Context()); err != nil {
			h.logger.Warn("dashboard mount incomplete", "view", v.ID(), "error", err)
		}
	}()
}

func (h *Handlers) props(v *dashboard.View) components.DashboardProps {
	return components.DashboardProps{
		ViewID:       v.ID(),
		State:        v.State(),
		WorkspaceURL: h.opts.WorkspaceURL,
		IsDev:        h.opts.IsDev,
	}
}

// DashboardPage creates a view for this tab, starts its fetches and renders
// the page. Requests without a session token are sent to the login page.
func (h *Handlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	token := session.Token(h.sessionStore, r)
	if token == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	theme := settings.Load(settings.NewCookieStore(w, r), h.opts.DefaultTheme)
	v := dashboard.New(dashboard.Config{
		Token:  token,
		API:    h.newAPI(token),
		Theme:  theme,
		Logger: h.logger,
	})
	h.views.Add(v)
	h.opts.Mount(v)

	if err := components.DashboardPage(h.props(v)).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// view resolves the {view} URL param and checks it belongs to the session.
func (h *Handlers) view(r *http.Request) (*dashboard.View, int) {
	v, ok := h.views.Get(chi.URLParam(r, "view"))
	if !ok {
		return nil, http.StatusNotFound
	}
	if !v.Owns(session.Token(h.sessionStore, r)) {
		return nil, http.StatusForbidden
	}
	return v, http.StatusOK
}

// DashboardUpdates is the long-lived SSE endpoint for one view. It sends
// the current shell on connect and again on every state change.
func (h *Handlers) DashboardUpdates(w http.ResponseWriter, r *http.Request) {
	v, status := h.view(r)
	if status == http.StatusNotFound {
		// The view was swept; start over with a fresh one.
		sse := datastar.NewSSE(w, r)
		_ = sse.Redirect("/dashboard")
		return
	}
	if v == nil {
		http.Error(w, http.StatusText(status), status)
		return
	}

	release := v.Attach()
	defer release()

	updates, cancel := v.Changes().Subscribe()
	defer cancel()

	sse := datastar.NewSSE(w, r)
	if err := h.send(sse, v); err != nil {
		_ = sse.ConsoleError(err)
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			if err := h.send(sse, v); err != nil {
				_ = sse.ConsoleError(err)
				// Keep trying on the next update.
			}
		}
	}
}

// send patches the shell and delivers any pending alert.
func (h *Handlers) send(sse *datastar.ServerSentEventGenerator, v *dashboard.View) error {
	if err := sse.PatchElementTempl(components.DashboardShell(h.props(v))); err != nil {
		return err
	}
	if msg := v.TakeAlert(); msg != "" {
		return sse.ExecuteScript(alertScript(msg))
	}
	return nil
}

func alertScript(msg string) string {
	b, _ := json.Marshal(msg)
	return "alert(" + string(b) + ")"
}

// Signals are the client-side values the dashboard binds.
type Signals struct {
	FolderName string `json:"folderName"`
	ShareEmail string `json:"shareEmail"`
	Pointer    string `json:"pointer"`
}

// actionFunc runs a view operation. The returned signals, if any, are
// patched back to the browser.
type actionFunc func(ctx context.Context, w http.ResponseWriter, r *http.Request, v *dashboard.View, sig Signals) (map[string]any, error)

// action adapts an actionFunc into an SSE handler.
func (h *Handlers) action(name string, fn actionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, status := h.view(r)
		if v == nil {
			http.Error(w, http.StatusText(status), status)
			return
		}

		// Read signals BEFORE creating SSE (SSE consumes the request body)
		var sig Signals
		if r.Method != http.MethodGet || r.URL.Query().Has("datastar") {
			if err := datastar.ReadSignals(r, &sig); err != nil {
				sse := datastar.NewSSE(w, r)
				_ = sse.ConsoleError(err)
				return
			}
		}

		patch, err := fn(r.Context(), w, r, v, sig)
		if err != nil && !isUserError(err) {
			h.logger.Debug("dashboard action failed", "action", name, "view", v.ID(), "error", err)
		}

		sse := datastar.NewSSE(w, r)
		if patch != nil {
			_ = sse.MarshalAndPatchSignals(patch)
		}
		if err := h.send(sse, v); err != nil {
			_ = sse.ConsoleError(err)
		}
		if err != nil && !isUserError(err) {
			_ = sse.ConsoleError(err)
		}
	}
}

// isUserError reports errors already shown inside the page.
func isUserError(err error) bool {
	return errors.Is(err, dashboard.ErrFolderNameRequired) || errors.Is(err, dashboard.ErrEmailRequired)
}

// ToggleWorkspaceMenu opens or closes the navbar dropdown.
func (h *Handlers) ToggleWorkspaceMenu(_ context.Context, _ http.ResponseWriter, _ *http.Request, v *dashboard.View, _ Signals) (map[string]any, error) {
	v.ToggleWorkspaceMenu()
	return nil, nil
}

// ToggleTheme flips the theme and stores it in the theme cookie.
func (h *Handlers) ToggleTheme(_ context.Context, w http.ResponseWriter, r *http.Request, v *dashboard.View, _ Signals) (map[string]any, error) {
	_, err := v.ToggleTheme(settings.NewCookieStore(w, r))
	return nil, err
}

// OpenCreateModal opens the create-folder modal with an empty input.
func (h *Handlers) OpenCreateModal(_ context.Context, _ http.ResponseWriter, _ *http.Request, v *dashboard.View, _ Signals) (map[string]any, error) {
	v.OpenCreateModal()
	return map[string]any{"folderName": ""}, nil
}

// CreateFolder submits the create-folder form.
func (h *Handlers) CreateFolder(ctx context.Context, _ http.ResponseWriter, _ *http.Request, v *dashboard.View, sig Signals) (map[string]any, error) {
	v.SetFolderName(sig.FolderName)
	if err := v.CreateFolder(ctx); err != nil {
		return nil, err
	}
	return map[string]any{"folderName": ""}, nil
}

// OpenDeleteModal opens the delete modal for ?kind=&id=.
func (h *Handlers) OpenDeleteModal(_ context.Context, _ http.ResponseWriter, r *http.Request, v *dashboard.View, _ Signals) (map[string]any, error) {
	q := r.URL.Query()
	kind, ok := dashboard.ParseEntityKind(q.Get("kind"))
	if !ok {
		return nil, dashboard.ErrUnknownKind
	}
	return nil, v.OpenDeleteModal(q.Get("id"), kind)
}

// ConfirmDelete deletes the selected entity.
func (h *Handlers) ConfirmDelete(ctx context.Context, _ http.ResponseWriter, _ *http.Request, v *dashboard.View, _ Signals) (map[string]any, error) {
	return nil, v.ConfirmDelete(ctx)
}

// CloseModal closes the open modal.
func (h *Handlers) CloseModal(_ context.Context, _ http.ResponseWriter, _ *http.Request, v *dashboard.View, _ Signals) (map[string]any, error) {
	v.CloseModal()
	return nil, nil
}

// OpenShareModal opens the share modal with an empty email.
func (h *Handlers) OpenShareModal(_ context.Context, _ http.ResponseWriter, _ *http.Request, v *dashboard.View, _ Signals) (map[string]any, error) {
	v.OpenShareModal()
	return map[string]any{"shareEmail": ""}, nil
}

// TogglePermissionMenu opens or closes the permission dropdown.
func (h *Handlers) TogglePermissionMenu(_ context.Context, _ http.ResponseWriter, _ *http.Request, v *dashboard.View, _ Signals) (map[string]any, error) {
	v.TogglePermissionMenu()
	return nil, nil
}

// SelectPermission picks the permission in ?value=.
func (h *Handlers) SelectPermission(_ context.Context, _ http.ResponseWriter, r *http.Request, v *dashboard.View, _ Signals) (map[string]any, error) {
	return nil, v.SelectPermission(dashboard.Permission(r.URL.Query().Get("value")))
}

// SubmitShare sends the invite for the bound email.
func (h *Handlers) SubmitShare(ctx context.Context, _ http.ResponseWriter, _ *http.Request, v *dashboard.View, sig Signals) (map[string]any, error) {
	v.SetShareEmail(sig.ShareEmail)
	_, err := v.SubmitShare(ctx)
	return nil, err
}

// Pointer delivers a page-level pointer event to open overlays.
func (h *Handlers) Pointer(_ context.Context, _ http.ResponseWriter, _ *http.Request, v *dashboard.View, sig Signals) (map[string]any, error) {
	v.Pointer(sig.Pointer)
	return nil, nil
}
