// Package api implements the authenticated client for the recruitment-portal
// backend and one service module per endpoint group (auth, account, articles,
// applicants, companies, users).
//
// All operations share a single configured Client. Service methods shape the
// request and parse the response; they carry no business logic and never
// swallow errors (logout excepted, see Logout).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/hanoivibes/jobport/config"
	"github.com/hanoivibes/jobport/errors"
	"github.com/hanoivibes/jobport/internal/httpclient"
	"github.com/hanoivibes/jobport/internal/version"
	"github.com/hanoivibes/jobport/logger"
	"github.com/hanoivibes/jobport/session"
)

// sessionCookie is the name of the server-issued session cookie captured
// from responses and replayed on requests
const sessionCookie = "JSESSIONID"

// publicPaths never carry the bearer header, even when a token is stored
var publicPaths = []string{
	"/api/auth/login",
	"/api/auth/register",
	"/api/auth/refresh-token",
	"/api/auth/forgot-password",
}

// isPublicPath reports whether a request path is exempt from authentication
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/public/") {
		return true
	}
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}

// Client is the authenticated API client shared by all service modules
type Client struct {
	baseURL string
	http    *http.Client
	session session.Store
	limiter *rate.Limiter
}

// New builds a Client from configuration and a session store
func New(cfg *config.Config, store session.Store) (*Client, error) {
	base, err := httpclient.ValidateBaseURL(cfg.Server.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	rps := cfg.Server.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.Server.RequestBurst
	if burst <= 0 {
		burst = 20
	}

	return &Client{
		baseURL: strings.TrimRight(base.String(), "/"),
		http:    httpclient.New(timeout),
		session: store,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// NewWithHTTPClient builds a Client over an explicit http.Client.
// Used by tests with httptest servers.
func NewWithHTTPClient(baseURL string, store session.Store, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		session: store,
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}

// Session exposes the client's session store to callers that own lifecycle
// decisions (the CLI closes it on exit)
func (c *Client) Session() session.Store {
	return c.session
}

// APIError is a non-2xx backend response. It unwraps to the sentinel that
// matches its status code so callers can use errors.Is.
type APIError struct {
	Status int
	Body   string

	sentinel error
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return "api error: status " + strconv.Itoa(e.Status)
	}
	return "api error: status " + strconv.Itoa(e.Status) + ": " + e.Body
}

func (e *APIError) Unwrap() error {
	return e.sentinel
}

// newAPIError drains the response body into an APIError
func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{
		Status:   resp.StatusCode,
		Body:     strings.TrimSpace(string(body)),
		sentinel: errors.FromStatusCode(resp.StatusCode),
	}
}

// request is a replayable description of one backend call. The body is built
// fresh per attempt so the 401 retry can resend multipart payloads.
type request struct {
	method string
	path   string
	query  url.Values
	// makeBody returns the body reader and its content type; nil for
	// body-less requests
	makeBody func() (io.Reader, string, error)
}

func jsonBody(payload any) func() (io.Reader, string, error) {
	return func() (io.Reader, string, error) {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, "", errors.Wrap(err, "failed to encode request body")
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// send performs one attempt of req: rate-limit, decorate, execute, capture
// the session cookie. Callers own the response body.
func (c *Client) send(ctx context.Context, req *request, accessToken string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter interrupted")
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	contentType := ""
	if req.makeBody != nil {
		var err error
		body, contentType, err = req.makeBody()
		if err != nil {
			return nil, err
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s %s", req.method, req.path)
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("User-Agent", version.UserAgent())
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	if accessToken != "" && !isPublicPath(req.path) {
		httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	}

	// Replay a previously captured session cookie. Defends against
	// environments where the cookie jar does not forward it.
	if sid, err := c.session.SessionID(); err == nil && sid != "" {
		httpReq.AddCookie(&http.Cookie{Name: sessionCookie, Value: sid})
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s failed", req.method, req.path)
	}

	c.captureSessionCookie(resp)
	return resp, nil
}

// captureSessionCookie persists the session identifier if the response sets one
func (c *Client) captureSessionCookie(resp *http.Response) {
	for _, ck := range resp.Cookies() {
		if ck.Name == sessionCookie && ck.Value != "" {
			if err := c.session.SetSessionID(ck.Value); err != nil {
				logger.Warnw("Failed to persist session cookie", "error", err)
			}
			return
		}
	}
}

// withAuthRetry executes req and, on a 401 for a non-public path, performs
// exactly one token refresh and replays the request once with the new access
// token. A 401 on the replay is returned as-is; it never refreshes twice.
// If the refresh itself fails (or no refresh token is stored) all session
// state is cleared and ErrSessionExpired is returned.
//
// Concurrent requests that each see a 401 before any refresh completes each
// trigger their own refresh. That matches the backend's token-rotation
// tolerance and is deliberately not serialized here.
func (c *Client) withAuthRetry(ctx context.Context, req *request) (*http.Response, error) {
	accessToken, err := c.session.AccessToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read access token")
	}

	resp, err := c.send(ctx, req, accessToken)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || isPublicPath(req.path) {
		return resp, nil
	}
	resp.Body.Close()

	newToken, refreshErr := c.refreshTokens(ctx)
	if refreshErr != nil {
		if clearErr := c.session.Clear(); clearErr != nil {
			logger.Warnw("Failed to clear session state", "error", clearErr)
		}
		logger.Infow("Session expired, cleared local credentials")
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrSessionExpired, refreshErr.Error()),
			"run `jobport login` to sign in again",
		)
	}

	logger.Debugw("Replaying request with refreshed token",
		"method", req.method,
		"path", req.path)
	return c.send(ctx, req, newToken)
}

// refreshTokens exchanges the stored refresh token for a new token pair and
// persists it. Returns the new access token.
func (c *Client) refreshTokens(ctx context.Context) (string, error) {
	refreshToken, err := c.session.RefreshToken()
	if err != nil {
		return "", errors.Wrap(err, "failed to read refresh token")
	}
	if refreshToken == "" {
		return "", errors.New("no refresh token stored")
	}

	req := &request{
		method:   http.MethodPost,
		path:     "/api/auth/refresh-token",
		makeBody: jsonBody(map[string]string{"refreshToken": refreshToken}),
	}

	resp, err := c.send(ctx, req, "")
	if err != nil {
		return "", errors.Wrap(err, "refresh-token call failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", newAPIError(resp)
	}

	var pair TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return "", errors.Wrap(err, "failed to decode refresh-token response")
	}

	if err := c.session.SetTokens(pair.AccessToken, pair.RefreshToken); err != nil {
		return "", errors.Wrap(err, "failed to persist refreshed tokens")
	}

	return pair.AccessToken, nil
}

// do executes req with auth retry and returns the response after verifying
// a 2xx status. Callers own the body.
func (c *Client) do(ctx context.Context, req *request) (*http.Response, error) {
	resp, err := c.withAuthRetry(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, newAPIError(resp)
	}

	return resp, nil
}

// doJSON executes req and decodes the response body into out (skipped when
// out is nil)
func (c *Client) doJSON(ctx context.Context, req *request, out any) error {
	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode %s %s response", req.method, req.path)
	}
	return nil
}

// List is a page of results with the backend's total row count
type List[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// doList executes req and derives the total from the X-Total-Count response
// header, defaulting to 0 when absent or malformed
func doList[T any](c *Client, ctx context.Context, req *request) (List[T], error) {
	var list List[T]

	resp, err := c.do(ctx, req)
	if err != nil {
		return list, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&list.Data); err != nil {
		return list, errors.Wrapf(err, "failed to decode %s %s response", req.method, req.path)
	}

	if total, err := strconv.Atoi(resp.Header.Get("X-Total-Count")); err == nil {
		list.Total = total
	}
	return list, nil
}

// PageQuery carries standard paging/sorting/filter parameters for list
// endpoints. Filters use the backend's criteria syntax, e.g.
// "articleId.equals" -> "42".
type PageQuery struct {
	Page    int
	Size    int
	Sort    string // "field,asc" or "field,desc"
	Filters map[string]string
}

func (q PageQuery) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	size := q.Size
	if size <= 0 {
		size = 10
	}
	v.Set("size", strconv.Itoa(size))
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	for key, value := range q.Filters {
		v.Set(key, value)
	}
	return v
}
