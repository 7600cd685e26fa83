// Package errors provides error handling for jobport.
//
// It re-exports github.com/cockroachdb/errors so callers get stack traces,
// wrapping, and user-facing hints from a single import, and defines the
// sentinel errors shared across the API client, session store, and CLI.
//
// Usage:
//
//	if err := client.CloseArticle(ctx, id); err != nil {
//	    return errors.Wrap(err, "failed to close article")
//	}
//
//	if errors.Is(err, errors.ErrSessionExpired) {
//	    // force re-login
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll

	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Sentinel errors for the portal client.
// Use with errors.Is(); wrap with errors.Wrap() to add context while
// preserving the type.
var (
	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRequest indicates the request was rejected as malformed
	// (validation failures on form input surface through this)
	ErrInvalidRequest = New("invalid request")

	// ErrUnauthorized indicates the request lacked valid credentials
	ErrUnauthorized = New("unauthorized")

	// ErrForbidden indicates the signed-in account may not perform the action
	ErrForbidden = New("forbidden")

	// ErrInvalidCredentials indicates a login attempt with a bad
	// username/password pair
	ErrInvalidCredentials = New("invalid username or password")

	// ErrSessionExpired indicates the access token expired and the refresh
	// attempt failed; all local session state has been cleared
	ErrSessionExpired = New("session expired")

	// ErrServiceUnavailable indicates the backend could not be reached or
	// answered with a server error
	ErrServiceUnavailable = New("service unavailable")

	// ErrAlreadyConnected indicates a second notification connection was
	// requested before the first was torn down
	ErrAlreadyConnected = New("notification channel already connected")
)

// IsAuthError reports whether err is any of the authentication/authorization
// sentinels. The CLI uses it to decide whether to print a re-login hint.
func IsAuthError(err error) bool {
	return err != nil && IsAny(err, ErrUnauthorized, ErrForbidden, ErrSessionExpired, ErrInvalidCredentials)
}

// FromStatusCode maps an HTTP status code to the matching sentinel error.
// 2xx codes map to nil; unrecognized 4xx codes map to ErrInvalidRequest and
// 5xx codes to ErrServiceUnavailable.
func FromStatusCode(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == 401:
		return ErrUnauthorized
	case status == 403:
		return ErrForbidden
	case status == 404:
		return ErrNotFound
	case status >= 400 && status < 500:
		return ErrInvalidRequest
	default:
		return ErrServiceUnavailable
	}
}
