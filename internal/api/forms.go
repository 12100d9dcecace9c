package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListForms returns the user's forms in service order.
func (c *Client) ListForms(ctx context.Context) ([]Form, error) {
	var forms []Form
	if err := c.do(ctx, "list forms", http.MethodGet, pathForms, nil, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

// DeleteForm deletes the form with the given id.
func (c *Client) DeleteForm(ctx context.Context, id string) error {
	if id == "" {
		return &Error{Kind: KindValidation, Op: "delete form", Message: "form id is required"}
	}
	return c.do(ctx, "delete form", http.MethodDelete, pathFormDelete+url.PathEscape(id), nil, nil)
}
