package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/formbot/internal/api"
	"github.com/leapstack-labs/formbot/internal/api/apitest"
)

func newClient(t *testing.T) (*api.Client, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer(t)
	return api.New(srv.URL, api.WithToken(apitest.Token), api.WithHTTPClient(srv.Client())), srv
}

type recordingTransport struct {
	next http.RoundTripper
	auth []string
}

func (rt *recordingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	rt.auth = append(rt.auth, r.Header.Get("Authorization"))
	return rt.next.RoundTrip(r)
}

// =============================================================================
// Folders
// =============================================================================

func TestListFolders_UnwrapsEnvelopeAndMongoIDs(t *testing.T) {
	client, srv := newClient(t)
	first := srv.AddFolder("Drafts")
	second := srv.AddFolder("Surveys")

	folders, err := client.ListFolders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []api.Folder{
		{ID: first, Name: "Drafts"},
		{ID: second, Name: "Surveys"},
	}, folders)
}

func TestCreateFolder(t *testing.T) {
	client, srv := newClient(t)

	folder, err := client.CreateFolder(context.Background(), "  Leads  ")
	require.NoError(t, err)

	assert.Equal(t, "Leads", folder.Name)
	assert.NotEmpty(t, folder.ID)
	require.Len(t, srv.Folders(), 1)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "POST /folder/create", calls[0].String())
	assert.Equal(t, map[string]any{"name": "Leads"}, calls[0].Body)
}

func TestCreateFolder_EmptyNameNeverHitsNetwork(t *testing.T) {
	client, srv := newClient(t)

	_, err := client.CreateFolder(context.Background(), "   ")

	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrValidation))
	assert.Empty(t, srv.Calls())
}

func TestDeleteFolder(t *testing.T) {
	client, srv := newClient(t)
	id := srv.AddFolder("Old")

	require.NoError(t, client.DeleteFolder(context.Background(), id))
	assert.Empty(t, srv.Folders())

	err := client.DeleteFolder(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrNotFound), "second delete should be not-found, got %v", err)
}

// =============================================================================
// Forms
// =============================================================================

func TestListAndDeleteForms(t *testing.T) {
	client, srv := newClient(t)
	id := srv.AddForm("Signup", "typebot")

	forms, err := client.ListForms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []api.Form{{ID: id, Name: "Signup", Type: "typebot"}}, forms)

	require.NoError(t, client.DeleteForm(context.Background(), id))
	assert.Equal(t, []string{"GET /form/all", "DELETE /form/delete/" + id}, srv.CallStrings())
}

// =============================================================================
// Users
// =============================================================================

func TestProfile(t *testing.T) {
	client, srv := newClient(t)
	srv.SetUsername("grace")

	p, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "grace", p.Username)
}

func TestResolveUserAndInvite(t *testing.T) {
	client, srv := newClient(t)
	srv.AddUser("user@example.com", "U42")

	id, err := client.ResolveUser(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "U42", id)

	require.NoError(t, client.InviteToFolder(context.Background(), id))
	assert.Equal(t, []string{"U42"}, srv.Invited())
}

// =============================================================================
// Error classification
// =============================================================================

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind api.Kind
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, api.KindUnauthorized, api.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, api.KindUnauthorized, api.ErrUnauthorized},
		{"not found", http.StatusNotFound, api.KindNotFound, api.ErrNotFound},
		{"bad request", http.StatusBadRequest, api.KindValidation, api.ErrValidation},
		{"server", http.StatusInternalServerError, api.KindServer, api.ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newClient(t)
			srv.Fail("GET /folder/all", tt.status)

			_, err := client.ListFolders(context.Background())
			require.Error(t, err)

			assert.Equal(t, tt.wantKind, api.KindOf(err))
			assert.True(t, errors.Is(err, tt.sentinel))

			var apiErr *api.Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "list folders", apiErr.Op)
		})
	}
}

func TestWrongTokenIsUnauthorized(t *testing.T) {
	srv := apitest.NewServer(t)
	client := api.New(srv.URL).WithToken("stale")

	_, err := client.Profile(context.Background())

	assert.True(t, errors.Is(err, api.ErrUnauthorized))
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid token", apiErr.Message)
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := api.New(url, api.WithTimeout(time.Second))
	_, err := client.ListForms(context.Background())

	require.Error(t, err)
	assert.Equal(t, api.KindNetwork, api.KindOf(err))
}

func TestMalformedBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	t.Cleanup(srv.Close)

	_, err := api.New(srv.URL).ListFolders(context.Background())

	assert.True(t, errors.Is(err, api.ErrDecode))
}

func TestWithHTTPClient_UsesSuppliedTransport(t *testing.T) {
	srv := apitest.NewServer(t)
	rt := &recordingTransport{next: http.DefaultTransport}
	client := api.New(srv.URL,
		api.WithToken(apitest.Token),
		api.WithHTTPClient(&http.Client{Transport: rt}),
		api.WithHTTPClient(nil),
	)

	_, err := client.ListForms(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer " + apitest.Token}, rt.auth)
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, api.Kind(""), api.KindOf(errors.New("boom")))
}
