package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultDirPermissions is used when creating ~/.jobport
const DefaultDirPermissions = 0o755

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.ws_url", "") // empty = derived from base_url by the notify package
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.requests_per_second", 10.0)
	v.SetDefault("server.request_burst", 20)

	v.SetDefault("session.path", defaultSessionPath())

	v.SetDefault("notify.reconnect_delay_seconds", 5)
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "jobport-session.db"
	}
	return filepath.Join(home, ".jobport", "session.db")
}
