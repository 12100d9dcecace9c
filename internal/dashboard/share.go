package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Permission is the access level picked in the share modal.
//
// It is collected but never sent: the invite endpoint has no field for it.
type Permission string

// Share permissions.
const (
	PermissionEdit Permission = "Edit"
	PermissionView Permission = "View"
)

// ParsePermission converts a selector value into a Permission.
func ParsePermission(s string) (Permission, bool) {
	switch Permission(strings.TrimSpace(s)) {
	case PermissionEdit:
		return PermissionEdit, true
	case PermissionView:
		return PermissionView, true
	}
	return "", false
}

// ShareStatus is the result of a share submission.
type ShareStatus int

// Share submission results.
const (
	ShareIdle ShareStatus = iota
	// ShareSent means both phases succeeded.
	ShareSent
	// ShareInvalid means the input was rejected before any request.
	ShareInvalid
	// ShareResolveFailed means the email could not be resolved; nothing changed remotely.
	ShareResolveFailed
	// ShareInviteFailed means the user was resolved but attaching them failed.
	ShareInviteFailed
)

// Alert messages shown for share submissions.
const (
	AlertInviteSent   = "Invite sent successfully!"
	AlertInviteFailed = "Failed to submit invite. Check console for details."
	AlertEmailMissing = "Email is required"
)

// ErrEmailRequired is returned when the share form is submitted empty.
var ErrEmailRequired = errors.New("email is required")

// ShareOutcome records how far a share submission got.
type ShareOutcome struct {
	Status ShareStatus
	Email  string
	// UserID is set once the email has been resolved.
	UserID string
	Err    error
}

// Partial reports whether the first phase succeeded and the second failed.
func (o ShareOutcome) Partial() bool {
	return o.Status == ShareInviteFailed
}

// Alert returns the message to surface for the outcome.
func (o ShareOutcome) Alert() string {
	switch o.Status {
	case ShareSent:
		return AlertInviteSent
	case ShareInvalid:
		return AlertEmailMissing
	case ShareResolveFailed, ShareInviteFailed:
		return AlertInviteFailed
	}
	return ""
}

// Detail describes the outcome for display inside the modal.
func (o ShareOutcome) Detail() string {
	switch o.Status {
	case ShareSent:
		return fmt.Sprintf("Invited %s.", o.Email)
	case ShareInvalid:
		return "Enter an email address."
	case ShareResolveFailed:
		return fmt.Sprintf("Could not find a user for %s.", o.Email)
	case ShareInviteFailed:
		return fmt.Sprintf("%s was found but could not be added to the folder. Nothing was rolled back.", o.Email)
	}
	return ""
}

// Inviter is the part of the API the share flow uses.
type Inviter interface {
	ResolveUser(ctx context.Context, email string) (string, error)
	InviteToFolder(ctx context.Context, userID string) error
}

// Invite runs the two-phase share: resolve the email to a user id, then
// attach that id to the folder's invite list. The second phase only runs
// after the first returns an id. There is no compensation when the second
// phase fails; the outcome reports it as partial.
func Invite(ctx context.Context, inv Inviter, email string) ShareOutcome {
	email = strings.TrimSpace(email)
	if email == "" {
		return ShareOutcome{Status: ShareInvalid, Err: ErrEmailRequired}
	}

	userID, err := inv.ResolveUser(ctx, email)
	if err != nil {
		return ShareOutcome{Status: ShareResolveFailed, Email: email, Err: fmt.Errorf("resolve %s: %w", email, err)}
	}
	if userID == "" {
		return ShareOutcome{Status: ShareResolveFailed, Email: email, Err: fmt.Errorf("resolve %s: empty user id", email)}
	}

	if err := inv.InviteToFolder(ctx, userID); err != nil {
		return ShareOutcome{Status: ShareInviteFailed, Email: email, UserID: userID, Err: fmt.Errorf("invite %s: %w", userID, err)}
	}
	return ShareOutcome{Status: ShareSent, Email: email, UserID: userID}
}

// ShareState is the share modal's local state.
type ShareState struct {
	Email          string
	Permission     Permission
	PermissionMenu bool
	Pending        bool
	Outcome        ShareOutcome
}

func newShareState() ShareState {
	return ShareState{Permission: PermissionEdit}
}
