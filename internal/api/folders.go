package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// ListFolders returns the user's folders in service order.
func (c *Client) ListFolders(ctx context.Context) ([]Folder, error) {
	var folders []Folder
	if err := c.do(ctx, "list folders", http.MethodGet, pathFolders, nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// CreateFolder creates a folder named name.
func (c *Client) CreateFolder(ctx context.Context, name string) (Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Folder{}, &Error{Kind: KindValidation, Op: "create folder", Message: "folder name is required"}
	}

	var folder Folder
	req := struct {
		Name string `json:"name"`
	}{Name: name}
	if err := c.do(ctx, "create folder", http.MethodPost, pathFolderCreate, req, &folder); err != nil {
		return Folder{}, err
	}
	return folder, nil
}

// DeleteFolder deletes the folder with the given id.
func (c *Client) DeleteFolder(ctx context.Context, id string) error {
	if id == "" {
		return &Error{Kind: KindValidation, Op: "delete folder", Message: "folder id is required"}
	}
	return c.do(ctx, "delete folder", http.MethodDelete, pathFolderDelete+url.PathEscape(id), nil, nil)
}

// InviteToFolder adds userID to the invite list of the current folder.
func (c *Client) InviteToFolder(ctx context.Context, userID string) error {
	if userID == "" {
		return &Error{Kind: KindValidation, Op: "invite user", Message: "user id is required"}
	}
	req := struct {
		InvitedUser string `json:"invitedUser"`
	}{InvitedUser: userID}
	return c.do(ctx, "invite user", http.MethodPut, pathFolderUpdate, req, nil)
}
