// Package config loads jobport configuration from layered TOML files and
// environment variables.
package config

// Config represents the jobport client configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server" toml:"server"`
	Session SessionConfig `mapstructure:"session" toml:"session"`
	Notify  NotifyConfig  `mapstructure:"notify" toml:"notify"`
}

// ServerConfig configures the backend origin and HTTP client behavior
type ServerConfig struct {
	// Backend origin; all API paths are relative to it
	BaseURL string `mapstructure:"base_url" toml:"base_url"`
	// Message-broker endpoint; empty = derived from base_url
	WSURL string `mapstructure:"ws_url" toml:"ws_url"`
	// HTTP client timeout
	TimeoutSeconds int `mapstructure:"timeout_seconds" toml:"timeout_seconds"`
	// Client-side rate limit
	RequestsPerSecond float64 `mapstructure:"requests_per_second" toml:"requests_per_second"`
	RequestBurst      int     `mapstructure:"request_burst" toml:"request_burst"`
}

// SessionConfig configures where session credentials are persisted
type SessionConfig struct {
	// SQLite database holding tokens, cached profile, and the session cookie
	Path string `mapstructure:"path" toml:"path"`
}

// NotifyConfig configures the push notification channel
type NotifyConfig struct {
	// Fixed delay between reconnect attempts
	ReconnectDelaySeconds int `mapstructure:"reconnect_delay_seconds" toml:"reconnect_delay_seconds"`
}
