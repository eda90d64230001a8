package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

type UserUpdate struct {
	Role *models.Role `json:"role,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	var out []models.User
	if err := c.do(ctx, "list_users", http.MethodGet, "/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, token, id string) (*models.User, error) {
	const op = "get_user"
	if err := checkID(op, id); err != nil {
		return nil, err
	}
	var out models.User
	if err := c.do(ctx, op, http.MethodGet, "/users/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, token, id string, update UserUpdate) (*models.User, error) {
	const op = "update_user"
	if err := checkID(op, id); err != nil {
		return nil, err
	}
	var out models.User
	if err := c.do(ctx, op, http.MethodPut, "/users/"+url.PathEscape(id), token, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the profile of the session's user.
func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, "me", http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
