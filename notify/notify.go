// Package notify delivers push notifications over a persistent
// publish/subscribe websocket connection.
//
// The push payload is only a wake-up signal: handlers are expected to
// re-fetch the authoritative notification list and unread count through the
// api package rather than trust the message contents.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/hanoivibes/jobport/config"
	"github.com/hanoivibes/jobport/errors"
	"github.com/hanoivibes/jobport/logger"
)

// Websocket timeout constants following Gorilla best practices
const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = 54 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024
)

// Event is one inbound message on the user's topic
type Event struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

// Handler is invoked for each event on the subscribed topic
type Handler func(Event)

// subscribeFrame is sent after each (re)connect to join the user's topic
type subscribeFrame struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	ID    string `json:"id"`
}

// Manager owns a single notification connection per signed-in session.
// Connect and Disconnect must be paired; the zero value is not usable, use
// NewManager.
type Manager struct {
	endpoint       string
	reconnectDelay time.Duration
	pingInterval   time.Duration
	dialer         *websocket.Dialer

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewManager builds a Manager from configuration. When no explicit ws_url is
// configured, the endpoint is derived from the base URL.
func NewManager(cfg *config.Config) (*Manager, error) {
	endpoint := cfg.Server.WSURL
	if endpoint == "" {
		derived, err := DeriveEndpoint(cfg.Server.BaseURL)
		if err != nil {
			return nil, err
		}
		endpoint = derived
	}

	delay := time.Duration(cfg.Notify.ReconnectDelaySeconds) * time.Second
	if delay <= 0 {
		delay = 5 * time.Second
	}

	return &Manager{
		endpoint:       endpoint,
		reconnectDelay: delay,
		pingInterval:   pingPeriod,
		dialer:         websocket.DefaultDialer,
	}, nil
}

// DeriveEndpoint maps a backend origin to its websocket notification
// endpoint (http -> ws, https -> wss, path /ws/notifications)
func DeriveEndpoint(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid base URL %q", baseURL)
	}

	switch strings.ToLower(u.Scheme) {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", errors.Newf("cannot derive websocket endpoint from scheme %q", u.Scheme)
	}

	u.Path = "/ws/notifications"
	return u.String(), nil
}

// Topic returns the per-user topic name
func Topic(userID int64) string {
	return fmt.Sprintf("/user/%d/notifications", userID)
}

// Connect opens the connection and subscribes to the user's topic. Events on
// that topic invoke onEvent. The connection reconnects with a fixed delay
// until Disconnect is called or ctx is cancelled. A second Connect without
// an intervening Disconnect returns ErrAlreadyConnected.
func (m *Manager) Connect(ctx context.Context, userID int64, onEvent Handler) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return errors.ErrAlreadyConnected
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done

	go m.run(runCtx, done, Topic(userID), onEvent)
	return nil
}

// Disconnect tears down the connection and stops reconnecting. Idempotent.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	cancel := m.cancel
	done := m.done
	m.cancel = nil
	m.done = nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// run dials, subscribes, and pumps until ctx is cancelled, redialing after
// the fixed delay on any connection failure
func (m *Manager) run(ctx context.Context, done chan struct{}, topic string, onEvent Handler) {
	defer close(done)

	for {
		if err := m.session(ctx, topic, onEvent); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warnw("Notification connection lost, reconnecting",
				"endpoint", m.endpoint,
				"delay", m.reconnectDelay,
				"error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(m.reconnectDelay):
		}
	}
}

// session runs one connection lifetime: dial, subscribe, read until error
// or cancellation
func (m *Manager) session(ctx context.Context, topic string, onEvent Handler) error {
	conn, _, err := m.dialer.DialContext(ctx, m.endpoint, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to dial %s", m.endpoint)
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(subscribeFrame{
		Type:  "subscribe",
		Topic: topic,
		ID:    uuid.NewString(),
	}); err != nil {
		return errors.Wrap(err, "failed to send subscribe frame")
	}

	logger.Debugw("Subscribed to notification topic", "topic", topic)

	// close the socket when ctx ends so the blocked read returns. Control
	// frames go through WriteControl: it is safe under concurrent callers,
	// so this goroutine and the ping ticker never trip gorilla's
	// single-writer check.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			conn.Close()
		case <-stop:
		}
	}()

	// heartbeat pings detect silent disconnects
	interval := m.pingInterval
	if interval <= 0 {
		interval = pingPeriod
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case <-stop:
				return
			}
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseNoStatusReceived,
			) {
				return errors.Wrap(err, "websocket read failed")
			}
			return err
		}

		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			logger.Warnw("Dropping malformed notification message", "error", err)
			continue
		}

		if event.Topic != "" && event.Topic != topic {
			logger.Debugw("Ignoring message for other topic", "topic", event.Topic)
			continue
		}

		onEvent(event)
	}
}
