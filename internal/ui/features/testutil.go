// Package features provides shared test utilities for UI feature tests.
package features

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/formbot/internal/api"
	"github.com/leapstack-labs/formbot/internal/api/apitest"
	"github.com/leapstack-labs/formbot/internal/dashboard"
	"github.com/leapstack-labs/formbot/internal/testutil"
	"github.com/leapstack-labs/formbot/internal/ui/session"
)

// TestSecret signs test sessions.
const TestSecret = "test-secret-key-32-bytes-long!!"

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	API          *apitest.Server
	Views        *dashboard.Registry
	SessionStore *sessions.CookieStore
	Logger       *slog.Logger

	t *testing.T
}

// SetupTestFixture creates a fake formbot service, a view registry and a
// session store. Views are unmounted when the test ends.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	views := dashboard.NewRegistry()
	t.Cleanup(views.Close)

	return &TestFixture{
		API:          apitest.NewServer(t),
		Views:        views,
		SessionStore: NewTestSessionStore(),
		Logger:       testutil.NewTestLogger(t),
		t:            t,
	}
}

// NewAPI returns a client for the fake service acting with token.
func (f *TestFixture) NewAPI(token string) dashboard.API {
	return api.New(f.API.URL, api.WithToken(token))
}

// SessionCookie returns a session cookie carrying token.
func (f *TestFixture) SessionCookie(token string) *http.Cookie {
	f.t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(f.t, session.SetToken(f.SessionStore, rec, req, token))

	cookies := rec.Result().Cookies()
	require.NotEmpty(f.t, cookies)
	return cookies[0]
}

// SignIn adds a session cookie for the fake service's token to r.
func (f *TestFixture) SignIn(r *http.Request) *http.Request {
	r.AddCookie(f.SessionCookie(apitest.Token))
	return r
}

// DatastarRequest builds a Datastar action request carrying signals as its
// JSON body.
func DatastarRequest(t *testing.T, method, target string, signals map[string]any) *http.Request {
	t.Helper()

	if signals == nil {
		signals = map[string]any{}
	}
	body, err := json.Marshal(signals)
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, io.NopCloser(bytes.NewReader(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	return req
}

// RequestWithTimeout wraps a request with a context timeout.
func RequestWithTimeout(r *http.Request, timeout time.Duration) *http.Request {
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	// Note: caller should handle cleanup, but for tests the timeout will trigger
	_ = cancel // suppress lint warning, context will be cancelled by timeout
	return r.WithContext(ctx)
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return session.NewCookieStore(TestSecret, 0)
}
