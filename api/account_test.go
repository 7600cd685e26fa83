package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fake notification backend: mark-viewed is one-way and idempotent
type notificationBackend struct {
	viewed map[int64]bool
}

func (b *notificationBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/notifications", func(w http.ResponseWriter, r *http.Request) {
		var out []Notification
		for id, viewed := range b.viewed {
			out = append(out, Notification{ID: id, Viewed: viewed})
		}
		w.Header().Set("X-Total-Count", "2")
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("/api/notifications/unread-count", func(w http.ResponseWriter, r *http.Request) {
		count := 0
		for _, viewed := range b.viewed {
			if !viewed {
				count++
			}
		}
		json.NewEncoder(w).Encode(count)
	})
	mux.HandleFunc("/api/notifications/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || !strings.HasSuffix(r.URL.Path, "/viewed") {
			http.NotFound(w, r)
			return
		}
		raw := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/notifications/"), "/viewed")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		b.viewed[id] = true
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func TestNotificationViewedTransitionIsOneWay(t *testing.T) {
	backend := &notificationBackend{viewed: map[int64]bool{1: false, 2: false}}
	client, store, _ := newTestClient(t, backend.handler())
	require.NoError(t, store.SetTokens("acc", "ref"))

	ctx := context.Background()

	count, err := client.UnreadNotificationCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, client.MarkNotificationViewed(ctx, 1))
	count, err = client.UnreadNotificationCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "marking viewed decrements unread by exactly one")

	// marking an already-viewed notification is a no-op on the counter
	require.NoError(t, client.MarkNotificationViewed(ctx, 1))
	count, err = client.UnreadNotificationCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNotificationsList(t *testing.T) {
	backend := &notificationBackend{viewed: map[int64]bool{1: false, 2: true}}
	client, store, _ := newTestClient(t, backend.handler())
	require.NoError(t, store.SetTokens("acc", "ref"))

	list, err := client.Notifications(context.Background(), PageQuery{Size: 10})
	require.NoError(t, err)
	assert.Len(t, list.Data, 2)
	assert.Equal(t, 2, list.Total)
}

func TestFollowUnfollowCompany(t *testing.T) {
	var followMethod, unfollowMethod string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/companies/5/follow", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			followMethod = r.Method
		case http.MethodDelete:
			unfollowMethod = r.Method
		}
		w.WriteHeader(http.StatusOK)
	})

	client, store, _ := newTestClient(t, mux)
	require.NoError(t, store.SetTokens("acc", "ref"))

	require.NoError(t, client.FollowCompany(context.Background(), 5))
	require.NoError(t, client.UnfollowCompany(context.Background(), 5))
	assert.Equal(t, http.MethodPost, followMethod)
	assert.Equal(t, http.MethodDelete, unfollowMethod)
}
