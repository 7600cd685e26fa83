package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanoivibes/jobport/api"
	"github.com/hanoivibes/jobport/config"
	"github.com/hanoivibes/jobport/notify"
)

func TestCanWatchNotifications(t *testing.T) {
	assert.True(t, canWatchNotifications(api.RoleUser))
	assert.False(t, canWatchNotifications(api.RoleEmployer))
	assert.False(t, canWatchNotifications(api.RoleAdmin))
}

var testUpgrader = websocket.Upgrader{}

func TestWatchSessionSwapDisconnectsPrevious(t *testing.T) {
	var open atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		open.Add(1)
		defer open.Add(-1)
		defer conn.Close()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.Server.WSURL = "ws" + strings.TrimPrefix(server.URL, "http")
	cfg.Notify.ReconnectDelaySeconds = 1

	connected := func(want int32) func() bool {
		return func() bool { return open.Load() == want }
	}

	first, err := notify.NewManager(cfg)
	require.NoError(t, err)
	require.NoError(t, first.Connect(context.Background(), 1, func(notify.Event) {}))

	live := &watchSession{}
	live.swap(first)
	require.Eventually(t, connected(1), 2*time.Second, 10*time.Millisecond)

	second, err := notify.NewManager(cfg)
	require.NoError(t, err)
	require.NoError(t, second.Connect(context.Background(), 1, func(notify.Event) {}))

	// installing the replacement tears the previous connection down
	live.swap(second)
	require.Eventually(t, connected(1), 2*time.Second, 10*time.Millisecond)

	live.stop()
	require.Eventually(t, connected(0), 2*time.Second, 10*time.Millisecond)

	assert.NotPanics(t, live.stop)
}
