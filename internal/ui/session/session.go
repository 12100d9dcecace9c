// Package session stores the bearer token in a signed cookie session.
package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

// Name is the cookie session name.
const Name = "formbot"

const tokenKey = "token"

// NewCookieStore creates the cookie store used for sessions.
// maxAge is in seconds; zero falls back to 30 days.
func NewCookieStore(secret string, maxAge int) *sessions.CookieStore {
	if maxAge <= 0 {
		maxAge = 86400 * 30
	}
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(maxAge)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

// Token returns the bearer token of the request's session, or "" when the
// user is not signed in.
func Token(store sessions.Store, r *http.Request) string {
	sess, err := store.Get(r, Name)
	if err != nil {
		return ""
	}
	token, _ := sess.Values[tokenKey].(string)
	return token
}

// SetToken stores token in the session and writes the cookie.
func SetToken(store sessions.Store, w http.ResponseWriter, r *http.Request, token string) error {
	sess, _ := store.Get(r, Name)
	sess.Values[tokenKey] = token
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the token and expires the cookie.
func Clear(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	sess, _ := store.Get(r, Name)
	delete(sess.Values, tokenKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
