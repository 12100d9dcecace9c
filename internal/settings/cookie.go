package settings

import (
	"net/http"
	"time"
)

// CookieName is the cookie holding the theme preference.
const CookieName = "theme"

const cookieMaxAge = 365 * 24 * time.Hour

// CookieStore stores the preference in a long-lived browser cookie.
// It is bound to one request/response pair.
type CookieStore struct {
	r *http.Request
	w http.ResponseWriter
}

// NewCookieStore binds a store to the current exchange. w may be nil for
// read-only use.
func NewCookieStore(w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{r: r, w: w}
}

// Get implements Store.
func (c *CookieStore) Get() (string, bool) {
	if c.r == nil {
		return "", false
	}
	cookie, err := c.r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}

// Set implements Store. It must run before the response headers are written.
func (c *CookieStore) Set(value string) error {
	if c.w == nil {
		return nil
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
