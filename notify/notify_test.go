package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanoivibes/jobport/config"
	"github.com/hanoivibes/jobport/errors"
)

func TestDeriveEndpoint(t *testing.T) {
	tests := []struct {
		base      string
		want      string
		shouldErr bool
	}{
		{"http://localhost:8080", "ws://localhost:8080/ws/notifications", false},
		{"https://portal.example.com", "wss://portal.example.com/ws/notifications", false},
		{"ftp://nope", "", true},
	}

	for _, tt := range tests {
		got, err := DeriveEndpoint(tt.base)
		if tt.shouldErr {
			assert.Error(t, err, tt.base)
			continue
		}
		require.NoError(t, err, tt.base)
		assert.Equal(t, tt.want, got)
	}
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "/user/7/notifications", Topic(7))
}

var upgrader = websocket.Upgrader{}

// pushServer upgrades connections, records the subscribe frame, and pushes
// canned events
type pushServer struct {
	conns      atomic.Int32
	subscribed chan subscribeFrame
	push       chan Event
}

func newPushServer() *pushServer {
	return &pushServer{
		subscribed: make(chan subscribeFrame, 4),
		push:       make(chan Event, 4),
	}
}

func (s *pushServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		s.conns.Add(1)

		var frame subscribeFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		s.subscribed <- frame

		s.pushLoop(conn)
	})
}

// pushLoop forwards canned events until the peer goes away
func (s *pushServer) pushLoop(conn *websocket.Conn) {
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case event := <-s.push:
			data, _ := json.Marshal(event)
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}

func newTestManager(serverURL string, delay time.Duration) *Manager {
	return &Manager{
		endpoint:       "ws" + strings.TrimPrefix(serverURL, "http"),
		reconnectDelay: delay,
		dialer:         websocket.DefaultDialer,
	}
}

func TestConnectSubscribesAndDelivers(t *testing.T) {
	backend := newPushServer()
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	manager := newTestManager(server.URL, 50*time.Millisecond)

	events := make(chan Event, 4)
	require.NoError(t, manager.Connect(context.Background(), 7, func(e Event) {
		events <- e
	}))
	defer manager.Disconnect()

	select {
	case frame := <-backend.subscribed:
		assert.Equal(t, "subscribe", frame.Type)
		assert.Equal(t, "/user/7/notifications", frame.Topic)
		assert.NotEmpty(t, frame.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("subscribe frame never arrived")
	}

	backend.push <- Event{Topic: "/user/7/notifications", Payload: json.RawMessage(`{"articleId":3}`)}

	select {
	case event := <-events:
		assert.Equal(t, "/user/7/notifications", event.Topic)
		assert.JSONEq(t, `{"articleId":3}`, string(event.Payload))
	case <-time.After(2 * time.Second):
		t.Fatal("event never delivered")
	}
}

func TestOtherTopicIgnored(t *testing.T) {
	backend := newPushServer()
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	manager := newTestManager(server.URL, 50*time.Millisecond)

	events := make(chan Event, 4)
	require.NoError(t, manager.Connect(context.Background(), 7, func(e Event) {
		events <- e
	}))
	defer manager.Disconnect()

	<-backend.subscribed
	backend.push <- Event{Topic: "/user/99/notifications"}
	backend.push <- Event{Topic: "/user/7/notifications"}

	select {
	case event := <-events:
		assert.Equal(t, "/user/7/notifications", event.Topic, "foreign topic leaked through")
	case <-time.After(2 * time.Second):
		t.Fatal("event never delivered")
	}
}

func TestSecondConnectRejected(t *testing.T) {
	backend := newPushServer()
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	manager := newTestManager(server.URL, 50*time.Millisecond)

	require.NoError(t, manager.Connect(context.Background(), 1, func(Event) {}))
	defer manager.Disconnect()

	err := manager.Connect(context.Background(), 1, func(Event) {})
	assert.ErrorIs(t, err, errors.ErrAlreadyConnected)
}

func TestDisconnectIdempotent(t *testing.T) {
	backend := newPushServer()
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	manager := newTestManager(server.URL, 50*time.Millisecond)
	require.NoError(t, manager.Connect(context.Background(), 1, func(Event) {}))

	manager.Disconnect()
	assert.NotPanics(t, manager.Disconnect)

	// a fresh Connect after Disconnect is allowed
	require.NoError(t, manager.Connect(context.Background(), 1, func(Event) {}))
	manager.Disconnect()
}

func TestReconnectAfterDrop(t *testing.T) {
	backend := newPushServer()

	// handler that closes the first connection immediately after subscribe
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		n := backend.conns.Add(1)

		var frame subscribeFrame
		if err := conn.ReadJSON(&frame); err != nil {
			conn.Close()
			return
		}
		backend.subscribed <- frame

		if n == 1 {
			// drop the first connection to force a reconnect
			conn.Close()
			return
		}
		defer conn.Close()
		backend.pushLoop(conn)
	}))
	defer server.Close()

	manager := newTestManager(server.URL, 20*time.Millisecond)

	events := make(chan Event, 4)
	require.NoError(t, manager.Connect(context.Background(), 7, func(e Event) {
		events <- e
	}))
	defer manager.Disconnect()

	// both the initial and the reconnect subscription must arrive
	for i := 0; i < 2; i++ {
		select {
		case <-backend.subscribed:
		case <-time.After(3 * time.Second):
			t.Fatalf("subscription %d never arrived", i+1)
		}
	}
	assert.GreaterOrEqual(t, backend.conns.Load(), int32(2))

	backend.push <- Event{Topic: "/user/7/notifications"}
	select {
	case <-events:
	case <-time.After(2 * time.Second):
		t.Fatal("event after reconnect never delivered")
	}
}

func TestDisconnectDuringPings(t *testing.T) {
	backend := newPushServer()
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	// A panic here means the heartbeat and the close frame raced on the
	// connection's write methods
	for i := 0; i < 20; i++ {
		manager := newTestManager(server.URL, 50*time.Millisecond)
		manager.pingInterval = time.Millisecond

		require.NoError(t, manager.Connect(context.Background(), 1, func(Event) {}))
		select {
		case <-backend.subscribed:
		case <-time.After(2 * time.Second):
			t.Fatal("subscribe frame never arrived")
		}
		time.Sleep(3 * time.Millisecond)
		manager.Disconnect()
	}
}

func TestNewManagerDerivesEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.BaseURL = "http://localhost:8080"
	cfg.Notify.ReconnectDelaySeconds = 3

	manager, err := NewManager(cfg)
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8080/ws/notifications", manager.endpoint)
	assert.Equal(t, 3*time.Second, manager.reconnectDelay)

	cfg.Server.WSURL = "wss://push.example.com/ws"
	manager, err = NewManager(cfg)
	require.NoError(t, err)
	assert.Equal(t, "wss://push.example.com/ws", manager.endpoint)
}
