package api

import (
	"context"
	"net/http"
	"strconv"
)

// Users lists accounts, optionally filtered by username substring. Admin only.
func (c *Client) Users(ctx context.Context, query PageQuery, username string) (List[User], error) {
	values := query.values()
	if username != "" {
		values.Set("username", username)
	}

	req := &request{
		method: http.MethodGet,
		path:   "/api/admin/users",
		query:  values,
	}
	return doList[User](c, ctx, req)
}

// UpdateUserRole changes an account's role. Admin only.
func (c *Client) UpdateUserRole(ctx context.Context, id int64, role Role) error {
	req := &request{
		method:   http.MethodPut,
		path:     "/api/admin/users/" + strconv.FormatInt(id, 10) + "/role",
		makeBody: jsonBody(map[string]string{"role": string(role)}),
	}
	return c.doJSON(ctx, req, nil)
}

// LockUser locks an account out of signing in. Admin only.
func (c *Client) LockUser(ctx context.Context, id int64) error {
	req := &request{
		method: http.MethodPut,
		path:   "/api/admin/users/" + strconv.FormatInt(id, 10) + "/lock",
	}
	return c.doJSON(ctx, req, nil)
}

// UnlockUser unlocks a locked account. Admin only.
func (c *Client) UnlockUser(ctx context.Context, id int64) error {
	req := &request{
		method: http.MethodPut,
		path:   "/api/admin/users/" + strconv.FormatInt(id, 10) + "/unlock",
	}
	return c.doJSON(ctx, req, nil)
}
