package home

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/formbot/internal/settings"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func setupTestHandlers(t *testing.T) *Handlers {
	t.Helper()

	h := NewHandlers(settings.DefaultTheme, true)
	h.now = func() time.Time { return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) }
	return h
}

// =============================================================================
// HomePage Tests
// =============================================================================

func TestHomePage(t *testing.T) {
	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "renders navbar banner and footer",
			wantStatus: http.StatusOK,
			wantBody: []string{
				"<!doctype html>",
				"<title>Formbot</title>",
				`id="lander-navbar"`,
				`id="lander-banner"`,
				`id="lander-footer"`,
				"2024",
				`data-theme="dark"`,
			},
		},
		{
			name:       "honours the stored theme",
			cookie:     &http.Cookie{Name: settings.CookieName, Value: "light"},
			wantStatus: http.StatusOK,
			wantBody:   []string{`data-theme="light"`},
		},
		{
			name:       "ignores an unknown stored theme",
			cookie:     &http.Cookie{Name: settings.CookieName, Value: "sepia"},
			wantStatus: http.StatusOK,
			wantBody:   []string{`data-theme="dark"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupTestHandlers(t)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			h.HomePage(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := rec.Body.String()
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want, "response should contain %q", want)
			}
		})
	}
}
