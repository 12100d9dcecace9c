package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeInviter struct {
	userID     string
	resolveErr error
	inviteErr  error

	resolved []string
	invited  []string
}

func (f *fakeInviter) ResolveUser(_ context.Context, email string) (string, error) {
	f.resolved = append(f.resolved, email)
	return f.userID, f.resolveErr
}

func (f *fakeInviter) InviteToFolder(_ context.Context, userID string) error {
	f.invited = append(f.invited, userID)
	return f.inviteErr
}

func TestInvite(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name         string
		email        string
		inv          *fakeInviter
		wantStatus   ShareStatus
		wantResolved int
		wantInvited  int
		wantAlert    string
	}{
		{
			name:         "both phases succeed",
			email:        " ada@example.com ",
			inv:          &fakeInviter{userID: "U1"},
			wantStatus:   ShareSent,
			wantResolved: 1,
			wantInvited:  1,
			wantAlert:    AlertInviteSent,
		},
		{
			name:       "blank email sends nothing",
			email:      "   ",
			inv:        &fakeInviter{userID: "U1"},
			wantStatus: ShareInvalid,
			wantAlert:  AlertEmailMissing,
		},
		{
			name:         "resolve error skips invite",
			email:        "ghost@example.com",
			inv:          &fakeInviter{resolveErr: boom},
			wantStatus:   ShareResolveFailed,
			wantResolved: 1,
			wantAlert:    AlertInviteFailed,
		},
		{
			name:         "empty user id skips invite",
			email:        "ghost@example.com",
			inv:          &fakeInviter{},
			wantStatus:   ShareResolveFailed,
			wantResolved: 1,
			wantAlert:    AlertInviteFailed,
		},
		{
			name:         "invite error is partial",
			email:        "ada@example.com",
			inv:          &fakeInviter{userID: "U1", inviteErr: boom},
			wantStatus:   ShareInviteFailed,
			wantResolved: 1,
			wantInvited:  1,
			wantAlert:    AlertInviteFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Invite(context.Background(), tt.inv, tt.email)

			assert.Equal(t, tt.wantStatus, out.Status)
			assert.Len(t, tt.inv.resolved, tt.wantResolved)
			assert.Len(t, tt.inv.invited, tt.wantInvited)
			assert.Equal(t, tt.wantAlert, out.Alert())
			assert.Equal(t, tt.wantStatus == ShareInviteFailed, out.Partial())
			assert.NotEmpty(t, out.Detail())
			if tt.wantStatus == ShareSent {
				assert.NoError(t, out.Err)
				assert.Equal(t, []string{"ada@example.com"}, tt.inv.resolved)
			} else {
				assert.Error(t, out.Err)
			}
		})
	}
}

func TestInvite_WrapsCause(t *testing.T) {
	boom := errors.New("boom")
	out := Invite(context.Background(), &fakeInviter{userID: "U9", inviteErr: boom}, "ada@example.com")

	assert.ErrorIs(t, out.Err, boom)
	assert.Equal(t, "U9", out.UserID)
	assert.Contains(t, out.Detail(), "Nothing was rolled back")
}

func TestParsePermission(t *testing.T) {
	p, ok := ParsePermission("View")
	assert.True(t, ok)
	assert.Equal(t, PermissionView, p)

	_, ok = ParsePermission("Owner")
	assert.False(t, ok)

	assert.Equal(t, PermissionEdit, newShareState().Permission)
}
