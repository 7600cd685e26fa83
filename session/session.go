// Package session persists the signed-in user's client-side state: access
// token, refresh token, cached profile, and the server-issued session cookie.
//
// This is the only process-wide mutable state the client keeps. Everything
// else is fetched per command and never cached.
package session

// Storage keys. These mirror what the backend hands out: the JSESSIONID key
// matches the cookie name verbatim.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyProfile      = "userInfo"
	KeySessionID    = "JSESSIONID"
)

// Store is the controlled accessor surface over persisted session state.
// Implementations must treat Clear as atomic: either all keys are removed or
// none are.
type Store interface {
	AccessToken() (string, error)
	RefreshToken() (string, error)
	// SetTokens stores both tokens of a token pair together
	SetTokens(access, refresh string) error

	SessionID() (string, error)
	SetSessionID(id string) error

	// Profile returns the cached profile JSON blob, empty if none is stored
	Profile() ([]byte, error)
	SetProfile(profile []byte) error

	// Clear removes all session state. Called on logout and on
	// unrecoverable refresh failure.
	Clear() error

	Close() error
}
