package backend

import (
	"context"
	"net/http"
	"strconv"

	"receiptweb/internal/models"
)

// AdminUsers lists every account. Non-admin tokens get a 403.
func (c *Client) AdminUsers(ctx context.Context, token string) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/api/admin/users",
		path:     "/api/admin/users",
		token:    token,
	}, &users)
	return users, err
}

// AdminReceipts lists receipts across all users
func (c *Client) AdminReceipts(ctx context.Context, token string) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := c.do(ctx, request{
		method:   http.MethodGet,
		endpoint: "/api/admin/receipts",
		path:     "/api/admin/receipts",
		token:    token,
	}, &receipts)
	return receipts, err
}

// AdminDeleteUser deletes a user and everything they own
func (c *Client) AdminDeleteUser(ctx context.Context, token string, id int) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		endpoint: "/api/admin/users/{id}",
		path:     "/api/admin/users/" + strconv.Itoa(id),
		token:    token,
	}, nil)
}
