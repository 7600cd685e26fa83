package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hanoivibes/jobport/errors"
	"github.com/hanoivibes/jobport/logger"
)

// Login exchanges credentials for a token pair, persists the pair, and
// caches the profile as a convenience for the CLI. The session cookie, if
// issued, is captured by the response plumbing.
//
// A rejected login persists nothing and returns ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	req := &request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		makeBody: jsonBody(map[string]string{
			"username": username,
			"password": password,
		}),
	}

	resp, err := c.withAuthRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := newAPIError(resp)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
			return nil, errors.Wrap(errors.ErrInvalidCredentials, apiErr.Error())
		}
		return nil, apiErr
	}

	var pair TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return nil, errors.Wrap(err, "failed to decode login response")
	}

	if err := c.session.SetTokens(pair.AccessToken, pair.RefreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to persist tokens")
	}

	// Cache the profile alongside the tokens. Failure here does not undo a
	// successful login.
	if profile, err := c.GetAccount(ctx); err != nil {
		logger.Warnw("Login succeeded but profile fetch failed", "error", err)
	} else if data, err := json.Marshal(profile); err == nil {
		if err := c.session.SetProfile(data); err != nil {
			logger.Warnw("Failed to cache profile", "error", err)
		}
	}

	return &pair, nil
}

// Register creates a new account
func (c *Client) Register(ctx context.Context, payload RegisterPayload) error {
	req := &request{
		method:   http.MethodPost,
		path:     "/api/auth/register",
		makeBody: jsonBody(payload),
	}
	return c.doJSON(ctx, req, nil)
}

// ForgotPassword triggers an emailed password reset
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	req := &request{
		method:   http.MethodPost,
		path:     "/api/auth/forgot-password",
		makeBody: jsonBody(map[string]string{"email": email}),
	}
	return c.doJSON(ctx, req, nil)
}

// Logout calls the server-side logout endpoint best-effort, then
// unconditionally clears all local session state. A network failure never
// blocks signing out locally.
func (c *Client) Logout(ctx context.Context) error {
	req := &request{
		method: http.MethodPost,
		path:   "/api/auth/logout",
	}
	if err := c.doJSON(ctx, req, nil); err != nil {
		logger.Warnw("Server-side logout failed, clearing local session anyway", "error", err)
	}

	return errors.Wrap(c.session.Clear(), "failed to clear session")
}

// CachedProfile returns the profile persisted at login, or nil when signed
// out. It never touches the network.
func (c *Client) CachedProfile() (*UserInfo, error) {
	data, err := c.session.Profile()
	if err != nil || data == nil {
		return nil, err
	}

	var info UserInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, errors.Wrap(err, "failed to decode cached profile")
	}
	return &info, nil
}
