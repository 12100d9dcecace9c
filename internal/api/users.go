package api

import (
	"context"
	"net/http"
	"strings"
)

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (UserProfile, error) {
	var p UserProfile
	if err := c.do(ctx, "fetch profile", http.MethodGet, pathProfile, nil, &p); err != nil {
		return UserProfile{}, err
	}
	return p, nil
}

// ResolveUser looks up the id of the user registered under email.
func (c *Client) ResolveUser(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", &Error{Kind: KindValidation, Op: "resolve user", Message: "email is required"}
	}

	var ref userRef
	req := struct {
		Email string `json:"email"`
	}{Email: email}
	if err := c.do(ctx, "resolve user", http.MethodPost, pathResolveEmail, req, &ref); err != nil {
		return "", err
	}
	if ref.id() == "" {
		return "", &Error{Kind: KindNotFound, Op: "resolve user", Message: "no user id in response"}
	}
	return ref.id(), nil
}
