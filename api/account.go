package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// GetAccount fetches the signed-in user's profile
func (c *Client) GetAccount(ctx context.Context) (*UserInfo, error) {
	req := &request{method: http.MethodGet, path: "/api/account"}

	var info UserInfo
	if err := c.doJSON(ctx, req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateAccount updates the profile and refreshes the cached copy
func (c *Client) UpdateAccount(ctx context.Context, payload UpdateUserPayload) (*UserInfo, error) {
	req := &request{
		method:   http.MethodPut,
		path:     "/api/account",
		makeBody: jsonBody(payload),
	}

	var info UserInfo
	if err := c.doJSON(ctx, req, &info); err != nil {
		return nil, err
	}

	// keep the cached profile in sync; best-effort
	if data, err := json.Marshal(info); err == nil {
		c.session.SetProfile(data)
	}

	return &info, nil
}

// UpdateAvatar uploads a new avatar image (multipart)
func (c *Client) UpdateAvatar(ctx context.Context, avatar Upload) error {
	req := &request{
		method:   http.MethodPost,
		path:     "/api/update-avatar",
		makeBody: fileBody("avatar", avatar),
	}
	return c.doJSON(ctx, req, nil)
}

// Notifications lists the user's notifications, newest first
func (c *Client) Notifications(ctx context.Context, query PageQuery) (List[Notification], error) {
	req := &request{
		method: http.MethodGet,
		path:   "/api/notifications",
		query:  query.values(),
	}
	return doList[Notification](c, ctx, req)
}

// UnreadNotificationCount returns the number of unviewed notifications
func (c *Client) UnreadNotificationCount(ctx context.Context) (int, error) {
	req := &request{method: http.MethodGet, path: "/api/notifications/unread-count"}

	var count int
	if err := c.doJSON(ctx, req, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkNotificationViewed flips one notification from unviewed to viewed.
// The transition is one-way; the backend treats repeats as no-ops.
func (c *Client) MarkNotificationViewed(ctx context.Context, id int64) error {
	req := &request{
		method: http.MethodPut,
		path:   "/api/notifications/" + strconv.FormatInt(id, 10) + "/viewed",
	}
	return c.doJSON(ctx, req, nil)
}

// FollowCompany subscribes the user to a company's new articles
func (c *Client) FollowCompany(ctx context.Context, companyID int64) error {
	req := &request{
		method: http.MethodPost,
		path:   "/api/companies/" + strconv.FormatInt(companyID, 10) + "/follow",
	}
	return c.doJSON(ctx, req, nil)
}

// UnfollowCompany removes a company subscription
func (c *Client) UnfollowCompany(ctx context.Context, companyID int64) error {
	req := &request{
		method: http.MethodDelete,
		path:   "/api/companies/" + strconv.FormatInt(companyID, 10) + "/follow",
	}
	return c.doJSON(ctx, req, nil)
}

// FollowedCompanies lists the companies the user follows
func (c *Client) FollowedCompanies(ctx context.Context) ([]Company, error) {
	req := &request{method: http.MethodGet, path: "/api/account/followed-companies"}

	var companies []Company
	if err := c.doJSON(ctx, req, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}
