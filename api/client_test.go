package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanoivibes/jobport/errors"
	"github.com/hanoivibes/jobport/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.MemoryStore, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewMemoryStore()
	client := NewWithHTTPClient(server.URL, store, server.Client())
	return client, store, server
}

func TestBearerAttachedOnlyOnPrivatePaths(t *testing.T) {
	var gotAuth, gotPublicAuth string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/account", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(UserInfo{Username: "alice"})
	})
	mux.HandleFunc("/public/api/articles/1", func(w http.ResponseWriter, r *http.Request) {
		gotPublicAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Article{ID: 1})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("tok-123", "ref-123"))

	_, err := client.GetAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)

	_, err = client.Article(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, gotPublicAuth, "public paths must not carry the bearer header")
}

func TestSessionCookieCaptureAndReplay(t *testing.T) {
	var gotCookie string

	mux := http.NewServeMux()
	mux.HandleFunc("/public/api/articles/1", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "sess-42", Path: "/"})
		json.NewEncoder(w).Encode(Article{ID: 1})
	})
	mux.HandleFunc("/public/api/articles/2", func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("JSESSIONID"); err == nil {
			gotCookie = ck.Value
		}
		json.NewEncoder(w).Encode(Article{ID: 2})
	})

	client, store, _ := newTestClient(t, mux)

	_, err := client.Article(context.Background(), 1)
	require.NoError(t, err)

	sid, err := store.SessionID()
	require.NoError(t, err)
	assert.Equal(t, "sess-42", sid)

	_, err = client.Article(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "sess-42", gotCookie)
}

func TestSingleRetryOn401(t *testing.T) {
	var accountCalls, refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/account", func(w http.ResponseWriter, r *http.Request) {
		if accountCalls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "Bearer new-access", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(UserInfo{Username: "alice"})
	})
	mux.HandleFunc("/api/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "old-refresh", body["refreshToken"])
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("stale-access", "old-refresh"))

	info, err := client.GetAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), accountCalls.Load())

	access, _ := store.AccessToken()
	refresh, _ := store.RefreshToken()
	assert.Equal(t, "new-access", access)
	assert.Equal(t, "new-refresh", refresh)
}

func TestSecond401DoesNotRefreshAgain(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/account", func(w http.ResponseWriter, r *http.Request) {
		// 401 on the original and on the replay
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/api/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"})
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("stale", "refresh"))

	_, err := client.GetAccount(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
	assert.Equal(t, int32(1), refreshCalls.Load(), "replay 401 must not trigger a second refresh")
}

func TestRefreshFailureClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/account", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/api/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("stale", "bad-refresh"))
	require.NoError(t, store.SetSessionID("sess"))
	require.NoError(t, store.SetProfile([]byte(`{"username":"alice"}`)))

	_, err := client.GetAccount(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSessionExpired))

	access, _ := store.AccessToken()
	refresh, _ := store.RefreshToken()
	sid, _ := store.SessionID()
	profile, _ := store.Profile()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	assert.Empty(t, sid)
	assert.Nil(t, profile)
}

func TestNoRefreshTokenClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/account", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("stale", ""))

	_, err := client.GetAccount(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSessionExpired))
}

func TestLoginPersistsTokensAndProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "s3cret", body["password"])
		assert.Empty(t, r.Header.Get("Authorization"), "login is a public path")
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "sess-7", Path: "/"})
		json.NewEncoder(w).Encode(TokenPair{AccessToken: "acc", RefreshToken: "ref", ExpiredIn: 3600})
	})
	mux.HandleFunc("/api/account", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(UserInfo{Username: "alice", Role: RoleUser})
	})

	client, store, _ := newTestClient(t, mux)

	pair, err := client.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "acc", pair.AccessToken)

	access, _ := store.AccessToken()
	assert.Equal(t, "acc", access)
	sid, _ := store.SessionID()
	assert.Equal(t, "sess-7", sid)

	cached, err := client.CachedProfile()
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "alice", cached.Username)
	assert.Equal(t, RoleUser, cached.Role)
}

func TestLoginInvalidCredentialsPersistsNothing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, store, _ := newTestClient(t, mux)

	_, err := client.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))

	access, _ := store.AccessToken()
	refresh, _ := store.RefreshToken()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestLogoutUnconditional(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("acc", "ref"))
	require.NoError(t, store.SetSessionID("sess"))

	err := client.Logout(context.Background())
	require.NoError(t, err, "logout must not fail on a server error")

	access, _ := store.AccessToken()
	sid, _ := store.SessionID()
	assert.Empty(t, access)
	assert.Empty(t, sid)
}

func TestListTotalFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"present", "137", 137},
		{"absent", "", 0},
		{"malformed", "many", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/public/api/articles", func(w http.ResponseWriter, r *http.Request) {
				if tt.header != "" {
					w.Header().Set("X-Total-Count", tt.header)
				}
				json.NewEncoder(w).Encode([]Article{{ID: 1, Title: "Backend Engineer"}})
			})

			client, _, _ := newTestClient(t, mux)

			list, err := client.Articles(context.Background(), PageQuery{Page: 0, Size: 10})
			require.NoError(t, err)
			assert.Len(t, list.Data, 1)
			assert.Equal(t, tt.want, list.Total)
		})
	}
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/public/api/articles/99", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such article", http.StatusNotFound)
	})

	client, _, _ := newTestClient(t, mux)

	_, err := client.Article(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Contains(t, apiErr.Body, "no such article")
}

func TestPageQueryValues(t *testing.T) {
	var got string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/applicants", func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		w.Header().Set("X-Total-Count", "1")
		json.NewEncoder(w).Encode([]Applicant{{ID: 1}})
	})

	client, _, _ := newTestClient(t, mux)

	_, err := client.Applicants(context.Background(), PageQuery{
		Page:    2,
		Size:    25,
		Sort:    "id,desc",
		Filters: map[string]string{"articleId.equals": "42"},
	}, ApplicantSubmitted)
	require.NoError(t, err)

	assert.Contains(t, got, "page=2")
	assert.Contains(t, got, "size=25")
	assert.Contains(t, got, "sort=id%2Cdesc")
	assert.Contains(t, got, "articleId.equals=42")
	assert.Contains(t, got, "status=SUBMITTED")
}
