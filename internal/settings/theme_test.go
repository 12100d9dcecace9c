package settings

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in     string
		want   Theme
		wantOK bool
	}{
		{"dark", ThemeDark, true},
		{"light", ThemeLight, true},
		{" Light ", ThemeLight, true},
		{"", "", false},
		{"solarized", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTheme(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_DefaultsWhenEmptyOrInvalid(t *testing.T) {
	store := NewMemoryStore()
	assert.Equal(t, DefaultTheme, Load(store, DefaultTheme))

	require.NoError(t, store.Set("purple"))
	assert.Equal(t, ThemeLight, Load(store, ThemeLight))

	assert.Equal(t, ThemeDark, Load(nil, ThemeDark))
}

func TestToggleTwiceRestoresPreference(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, Save(store, ThemeLight))

	original := Load(store, DefaultTheme)
	require.NoError(t, Save(store, Load(store, DefaultTheme).Toggle()))
	assert.Equal(t, ThemeDark, Load(store, DefaultTheme))
	require.NoError(t, Save(store, Load(store, DefaultTheme).Toggle()))

	assert.Equal(t, original, Load(store, DefaultTheme))
}

func TestCookieStore(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, DefaultTheme, Load(NewCookieStore(rec, req), DefaultTheme))

	require.NoError(t, Save(NewCookieStore(rec, req), ThemeLight))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "light", cookies[0].Value)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	assert.Equal(t, ThemeLight, Load(NewCookieStore(nil, next), DefaultTheme))
}
