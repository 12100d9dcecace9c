// Package dashboard holds the per-tab dashboard view model.
//
// A View owns every piece of mutable UI state: the cached folder and form
// lists, which modal is open, the pending folder name, the share modal, and
// the theme. HTTP handlers translate browser events into View calls and
// re-render from State. Lists are never edited locally; every successful
// mutation is followed by a full re-fetch.
package dashboard

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/formbot/internal/api"
	"github.com/leapstack-labs/formbot/internal/dashboard/clickaway"
	"github.com/leapstack-labs/formbot/internal/settings"
	"github.com/leapstack-labs/formbot/internal/ui/notifier"
)

// Modal identifies the open overlay.
type Modal int

// Modals. At most one is open at a time.
const (
	ModalNone Modal = iota
	ModalCreateFolder
	ModalDelete
	ModalShare
)

func (m Modal) String() string {
	switch m {
	case ModalCreateFolder:
		return "create-folder"
	case ModalDelete:
		return "delete"
	case ModalShare:
		return "share"
	}
	return "none"
}

// EntityKind routes a deletion to the matching endpoint.
type EntityKind string

// Deletable entity kinds.
const (
	KindFolder EntityKind = "folder"
	KindForm   EntityKind = "form"
)

// ParseEntityKind validates a kind received from the browser.
func ParseEntityKind(s string) (EntityKind, bool) {
	switch EntityKind(s) {
	case KindFolder:
		return KindFolder, true
	case KindForm:
		return KindForm, true
	}
	return "", false
}

// DeleteTarget is the entity the delete modal will remove.
type DeleteTarget struct {
	ID   string
	Kind EntityKind
}

// ShareRegion is the element subtree of the share modal.
var ShareRegion = clickaway.Region{ID: "share-modal"}

// Messages shown to the user.
const (
	ErrMsgFolderName  = "Enter folder name"
	AlertSessionEnded = "Your session has expired. Please sign in again."
)

// Errors returned by View operations.
var (
	ErrFolderNameRequired = errors.New("folder name is required")
	ErrNoDeleteTarget     = errors.New("no delete target selected")
	ErrUnknownKind        = errors.New("unknown entity kind")
	ErrUnmounted          = errors.New("view is unmounted")
)

// API is the part of the formbot client the dashboard needs.
type API interface {
	Inviter
	Profile(ctx context.Context) (api.UserProfile, error)
	ListFolders(ctx context.Context) ([]api.Folder, error)
	CreateFolder(ctx context.Context, name string) (api.Folder, error)
	DeleteFolder(ctx context.Context, id string) error
	ListForms(ctx context.Context) ([]api.Form, error)
	DeleteForm(ctx context.Context, id string) error
}

// State is a snapshot of the view for rendering.
type State struct {
	Loading         bool
	Profile         api.UserProfile
	Folders         []api.Folder
	Forms           []api.Form
	Modal           Modal
	Target          DeleteTarget
	FolderName      string
	FolderNameError string
	Share           ShareState
	Theme           settings.Theme
	WorkspaceMenu   bool
}

// WorkspaceLabel is the navbar title.
func (s State) WorkspaceLabel() string {
	if s.Profile.Username == "" {
		return "workspace"
	}
	return s.Profile.Username + "'s workspace"
}

// Config configures a View.
type Config struct {
	// ID defaults to a random uuid.
	ID     string
	Token  string
	API    API
	Theme  settings.Theme
	Logger *slog.Logger
}

// View is the dashboard orchestrator for one browser tab.
type View struct {
	id      string
	token   string
	api     API
	logger  *slog.Logger
	changes *notifier.Notifier
	clicks  *clickaway.Registry
	ctx     context.Context
	cancel  context.CancelFunc

	mu       sync.Mutex
	mounted  bool
	state    State
	alert    string
	shareSub *clickaway.Subscription
	streams  int
	lastSeen time.Time

	// Generation of the latest list fetch issued. Older results are dropped.
	foldersGen uint64
	formsGen   uint64
}

// New creates a mounted view. Call Mount to load data.
func New(cfg Config) *View {
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	theme := cfg.Theme
	if theme == "" {
		theme = settings.DefaultTheme
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &View{
		id:       id,
		token:    cfg.Token,
		api:      cfg.API,
		logger:   logger.With("view", id),
		changes:  notifier.New(),
		clicks:   clickaway.NewRegistry(),
		ctx:      ctx,
		cancel:   cancel,
		mounted:  true,
		lastSeen: time.Now(),
		state: State{
			Loading: cfg.Token != "",
			Theme:   theme,
			Share:   newShareState(),
		},
	}
}

// ID returns the view id.
func (v *View) ID() string { return v.id }

// Owns reports whether token is the session token the view was created for.
func (v *View) Owns(token string) bool {
	return token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(v.token)) == 1
}

// Context is cancelled when the view is unmounted.
func (v *View) Context() context.Context { return v.ctx }

// Changes returns the notifier pinged on every state change.
func (v *View) Changes() *notifier.Notifier { return v.changes }

// Clicks returns the page-level pointer listener registry.
func (v *View) Clicks() *clickaway.Registry { return v.clicks }

// State returns a copy of the current state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Folders = append([]api.Folder(nil), v.state.Folders...)
	s.Forms = append([]api.Form(nil), v.state.Forms...)
	return s
}

// Mounted reports whether the view still accepts updates.
func (v *View) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted
}

// update applies fn under the lock when the view is mounted, then notifies.
func (v *View) update(fn func(s *State)) bool {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return false
	}
	fn(&v.state)
	v.mu.Unlock()
	v.changes.Broadcast()
	return true
}

// Mount fetches the profile, folders and forms. The three requests run
// concurrently and each result is applied on its own; a failed fetch leaves
// its part of the state unchanged. Nothing is fetched without a token.
func (v *View) Mount(ctx context.Context) error {
	if v.token == "" || v.api == nil {
		return nil
	}

	var g errgroup.Group
	g.Go(func() error {
		p, err := v.api.Profile(ctx)
		if err != nil {
			return v.remoteFailure("fetch profile", err)
		}
		v.update(func(s *State) { s.Profile = p })
		return nil
	})
	g.Go(func() error { return v.refreshFolders(ctx) })
	g.Go(func() error { return v.refreshForms(ctx) })
	err := g.Wait()

	v.update(func(s *State) { s.Loading = false })
	return err
}

func (v *View) refreshFolders(ctx context.Context) error {
	gen := v.issue(&v.foldersGen)
	folders, err := v.api.ListFolders(ctx)
	if err != nil {
		return v.remoteFailure("list folders", err)
	}
	v.update(func(s *State) {
		if gen == v.foldersGen {
			s.Folders = folders
		}
	})
	return nil
}

func (v *View) refreshForms(ctx context.Context) error {
	gen := v.issue(&v.formsGen)
	forms, err := v.api.ListForms(ctx)
	if err != nil {
		return v.remoteFailure("list forms", err)
	}
	v.update(func(s *State) {
		if gen == v.formsGen {
			s.Forms = forms
		}
	})
	return nil
}

// issue bumps a list generation and returns the new value.
func (v *View) issue(gen *uint64) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	*gen++
	return *gen
}

// remoteFailure logs a failed call and queues the sign-in alert for
// unauthorized errors. Other failures stay silent for the user.
func (v *View) remoteFailure(op string, err error) error {
	kind := api.KindOf(err)
	v.logger.Error("dashboard call failed", "op", op, "kind", kind, "error", err)
	if errors.Is(err, api.ErrUnauthorized) {
		v.mu.Lock()
		if v.mounted {
			v.alert = AlertSessionEnded
		}
		v.mu.Unlock()
	}
	return fmt.Errorf("%s: %w", op, err)
}

// closeModalLocked closes any open modal and drops its pointer listener.
func (v *View) closeModalLocked() {
	if v.shareSub != nil {
		v.shareSub.Release()
		v.shareSub = nil
	}
	v.state.Modal = ModalNone
}

// closeIfOpen closes m unless the user has moved on to another modal.
func (v *View) closeIfOpen(m Modal) {
	v.update(func(s *State) {
		if s.Modal == m {
			v.closeModalLocked()
		}
	})
}

// OpenCreateModal opens the create-folder modal with an empty name.
func (v *View) OpenCreateModal() {
	v.update(func(s *State) {
		v.closeModalLocked()
		s.FolderName = ""
		s.FolderNameError = ""
		s.Modal = ModalCreateFolder
	})
}

// OpenDeleteModal opens the delete modal for the given entity.
func (v *View) OpenDeleteModal(id string, kind EntityKind) error {
	if _, ok := ParseEntityKind(string(kind)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if id == "" {
		return ErrNoDeleteTarget
	}
	v.update(func(s *State) {
		v.closeModalLocked()
		s.Target = DeleteTarget{ID: id, Kind: kind}
		s.Modal = ModalDelete
	})
	return nil
}

// OpenShareModal opens the share modal and starts listening for clicks
// outside it.
func (v *View) OpenShareModal() {
	v.update(func(s *State) {
		v.closeModalLocked()
		s.Share = newShareState()
		s.Modal = ModalShare
		v.shareSub = v.clicks.Subscribe(ShareRegion, v.closeModalLocked)
	})
}

// CloseModal closes whichever modal is open.
func (v *View) CloseModal() {
	v.update(func(*State) { v.closeModalLocked() })
}

// Pointer delivers a page-level pointer event on the element with id target.
// Listeners run with the view locked. It reports whether any listener fired.
func (v *View) Pointer(target string) bool {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return false
	}
	fired := v.clicks.Dispatch(target) > 0
	v.mu.Unlock()

	if fired {
		v.changes.Broadcast()
	}
	return fired
}

// SetFolderName updates the create-folder input.
func (v *View) SetFolderName(name string) {
	v.update(func(s *State) { s.FolderName = name })
}

// CreateFolder validates the pending name and creates the folder. On
// success the modal closes and the folder list is re-fetched.
func (v *View) CreateFolder(ctx context.Context) error {
	var name string
	valid := v.update(func(s *State) {
		s.FolderNameError = ""
		name = strings.TrimSpace(s.FolderName)
		if name == "" {
			s.FolderNameError = ErrMsgFolderName
		}
	})
	if !valid {
		return ErrUnmounted
	}
	if name == "" {
		return ErrFolderNameRequired
	}

	if _, err := v.api.CreateFolder(ctx, name); err != nil {
		return v.remoteFailure("create folder", err)
	}
	v.closeIfOpen(ModalCreateFolder)
	return v.refreshFolders(ctx)
}

// ConfirmDelete deletes the current target, then closes the modal and
// re-fetches the matching list.
func (v *View) ConfirmDelete(ctx context.Context) error {
	v.mu.Lock()
	target := v.state.Target
	open := v.state.Modal == ModalDelete
	v.mu.Unlock()

	if !open || target.ID == "" {
		return ErrNoDeleteTarget
	}

	switch target.Kind {
	case KindFolder:
		if err := v.api.DeleteFolder(ctx, target.ID); err != nil {
			return v.remoteFailure("delete folder", err)
		}
		v.closeIfOpen(ModalDelete)
		return v.refreshFolders(ctx)
	case KindForm:
		if err := v.api.DeleteForm(ctx, target.ID); err != nil {
			return v.remoteFailure("delete form", err)
		}
		v.closeIfOpen(ModalDelete)
		return v.refreshForms(ctx)
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, target.Kind)
}

// ToggleTheme flips the theme and persists it to store.
func (v *View) ToggleTheme(store settings.Store) (settings.Theme, error) {
	var theme settings.Theme
	v.update(func(s *State) {
		s.Theme = s.Theme.Toggle()
		theme = s.Theme
	})
	if theme == "" {
		return v.State().Theme, ErrUnmounted
	}
	if err := settings.Save(store, theme); err != nil {
		return theme, fmt.Errorf("save theme: %w", err)
	}
	return theme, nil
}

// ToggleWorkspaceMenu opens or closes the navbar dropdown.
func (v *View) ToggleWorkspaceMenu() {
	v.update(func(s *State) { s.WorkspaceMenu = !s.WorkspaceMenu })
}

// SetShareEmail updates the share modal input.
func (v *View) SetShareEmail(email string) {
	v.update(func(s *State) { s.Share.Email = email })
}

// TogglePermissionMenu opens or closes the permission dropdown.
func (v *View) TogglePermissionMenu() {
	v.update(func(s *State) { s.Share.PermissionMenu = !s.Share.PermissionMenu })
}

// SelectPermission picks a permission and closes the dropdown.
func (v *View) SelectPermission(p Permission) error {
	if _, ok := ParsePermission(string(p)); !ok {
		return fmt.Errorf("unknown permission %q", p)
	}
	v.update(func(s *State) {
		s.Share.Permission = p
		s.Share.PermissionMenu = false
	})
	return nil
}

// SubmitShare runs the two-phase invite for the pending email. The outcome
// is stored on the share modal and its alert queued.
func (v *View) SubmitShare(ctx context.Context) (ShareOutcome, error) {
	var email string
	ok := v.update(func(s *State) {
		email = s.Share.Email
		s.Share.Pending = true
	})
	if !ok {
		return ShareOutcome{}, ErrUnmounted
	}

	outcome := Invite(ctx, v.api, email)
	if outcome.Err != nil {
		v.logger.Error("share invite failed",
			"status", outcome.Status,
			"user_id", outcome.UserID,
			"kind", api.KindOf(outcome.Err),
			"error", outcome.Err)
	} else {
		v.logger.Info("share invite sent", "user_id", outcome.UserID)
	}

	v.update(func(s *State) {
		s.Share.Pending = false
		s.Share.Outcome = outcome
	})
	v.mu.Lock()
	if v.mounted {
		v.alert = outcome.Alert()
	}
	v.mu.Unlock()
	return outcome, outcome.Err
}

// TakeAlert returns and clears the pending alert message.
func (v *View) TakeAlert() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	msg := v.alert
	v.alert = ""
	return msg
}

// Attach records an open update stream and returns its release func.
func (v *View) Attach() func() {
	v.mu.Lock()
	v.streams++
	v.lastSeen = time.Now()
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			v.streams--
			v.lastSeen = time.Now()
			v.mu.Unlock()
		})
	}
}

// Idle reports whether the view has had no stream attached for longer than d.
func (v *View) Idle(now time.Time, d time.Duration) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.streams == 0 && now.Sub(v.lastSeen) > d
}

// Unmount stops the view. In-flight requests are cancelled through Context,
// and any result that still arrives is discarded.
func (v *View) Unmount() {
	v.mu.Lock()
	if !v.mounted {
		v.mu.Unlock()
		return
	}
	v.closeModalLocked()
	v.mounted = false
	v.mu.Unlock()

	v.clicks.Clear()
	v.cancel()
	v.changes.Close()
}
